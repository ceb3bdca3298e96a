package models

import "strconv"

// ID is the numeric identifier used by every document in the local store.
// Route parameters arrive as strings and stored JSON carries numbers, so all
// lookups go through ParseID instead of comparing mixed representations.
type ID int64

func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
