package model

import "time"

// User represents a registered username row.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the payload for the get-or-create login flow.
type LoginRequest struct {
	Username string `json:"username"`
}
