package model

import "time"

// Message represents a stored chat message row.
type Message struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePostRequest is the payload for posting a new message.
type MessagePostRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// MessageEditRequest is the payload for editing an existing message.
type MessageEditRequest struct {
	Content string `json:"content"`
}
