package store

import (
	"encoding/json"

	"edusync/backend/models"
)

// NotificationStore keeps every user's notification list inside the single
// "notifications" document, most recent first. There is no size cap and no
// expiry; the list grows without bound.
type NotificationStore struct {
	kv KV
}

func NewNotificationStore(kv KV) *NotificationStore {
	return &NotificationStore{kv: kv}
}

// Push prepends a notification to the user's list with a minted id, unread.
func (n *NotificationStore) Push(userID models.ID, notification models.Notification) models.Notification {
	all := n.load()
	list := all[userID]

	notification.ID = mintID(func(id models.ID) bool {
		for _, existing := range list {
			if existing.ID == id {
				return true
			}
		}
		return false
	})
	notification.IsRead = false
	notification.Timestamp = nowRFC3339()

	all[userID] = append([]models.Notification{notification}, list...)
	n.saveAll(all)
	return notification
}

// List returns the user's notifications, most recent first.
func (n *NotificationStore) List(userID models.ID) []models.Notification {
	list, ok := n.load()[userID]
	if !ok {
		return []models.Notification{}
	}
	return list
}

// MarkRead flips one notification's read flag.
func (n *NotificationStore) MarkRead(userID, notificationID models.ID) error {
	all := n.load()
	list := all[userID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].IsRead = true
			all[userID] = list
			n.saveAll(all)
			return nil
		}
	}
	return ErrNotFound
}

func (n *NotificationStore) load() map[models.ID][]models.Notification {
	raw, ok := n.kv.Get(keyNotifications)
	if !ok {
		return map[models.ID][]models.Notification{}
	}
	var all map[models.ID][]models.Notification
	if err := json.Unmarshal([]byte(raw), &all); err != nil || all == nil {
		return map[models.ID][]models.Notification{}
	}
	return all
}

func (n *NotificationStore) saveAll(all map[models.ID][]models.Notification) {
	raw, err := json.Marshal(all)
	if err != nil {
		return
	}
	n.kv.Set(keyNotifications, string(raw))
}
