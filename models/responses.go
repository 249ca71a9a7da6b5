package models

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// ProgressResponse is returned by a successful upsert.
type ProgressResponse struct {
	Progress Progress `json:"progress"`
	Message  string   `json:"message"`
}

// MessageResponse is the body of every error and of message-only replies.
type MessageResponse struct {
	Message string `json:"message"`
}
