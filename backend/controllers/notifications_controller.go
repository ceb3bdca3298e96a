package controllers

import (
	"edusync/backend/config"
	"edusync/backend/models"
	"edusync/backend/store"
	"edusync/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationsController struct {
	Notifications *store.NotificationStore
	Cfg           *config.Config
}

func NewNotificationsController(notifications *store.NotificationStore, cfg *config.Config) *NotificationsController {
	return &NotificationsController{Notifications: notifications, Cfg: cfg}
}

func (nc *NotificationsController) List(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, nc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	return c.JSON(nc.Notifications.List(user.ID))
}

func (nc *NotificationsController) MarkRead(c *fiber.Ctx) error {
	user, err := utils.ExtractUserFromToken(c, nc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	notificationID, err := models.ParseID(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	if err := nc.Notifications.MarkRead(user.ID, notificationID); err != nil {
		return utils.NotFound(c, "Notification not found")
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}
