package model

// Notification is a message delivered to the logged-in user.
type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt Timestamp `json:"createdAt"`
	Link      string    `json:"link,omitempty"`
}

// CountUnread returns the number of notifications not yet read.
func CountUnread(ns []Notification) int {
	n := 0
	for _, note := range ns {
		if !note.IsRead {
			n++
		}
	}
	return n
}
