package models

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Role       string `json:"role,omitempty"`
	Permission string `json:"permission,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// TokenResponse is returned by login and token generation.
type TokenResponse struct {
	Token     string `json:"jwt_token"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}

// PromptResponse is returned by POST /api/prompt.
type PromptResponse struct {
	PromptID string  `json:"prompt_id"`
	Number   float64 `json:"number"`
}

// QueueResponse is the caller-scoped queue view.
type QueueResponse struct {
	Running []QueueEntry `json:"queue_running"`
	Pending []QueueEntry `json:"queue_pending"`
}

// UserEnvStatus describes a user's private storage root.
type UserEnvStatus struct {
	Username      string   `json:"user"`
	Root          string   `json:"root"`
	Exists        bool     `json:"exists"`
	FileCount     int      `json:"file_count"`
	Files         []string `json:"files"`
	IsGalleryRoot bool     `json:"is_gallery_root"`
}
