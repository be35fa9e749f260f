package models

import "encoding/json"

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	GuestLogin bool   `json:"guest_login"`
}

// RegisterRequest is the body of POST /register. Admin credentials are
// required once the first (bootstrap) admin exists.
type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	AdminUsername string `json:"admin_username,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// GenerateTokenRequest is the body of POST /generate_token.
type GenerateTokenRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	ExpireHours int    `json:"expire_hours"`
}

// UpdateUserRequest is the body of PUT /usgromana/api/users/{username}.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Groups      []string `json:"groups,omitempty"`
	SafetyCheck *bool    `json:"sfw_check,omitempty"`
}

// SafetyPreferenceRequest is the body of PUT /usgromana/api/me/safety.
type SafetyPreferenceRequest struct {
	SafetyCheck bool `json:"sfw_check"`
}

// IPLists holds the allow and deny address lists.
type IPLists struct {
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

// User environment actions.
const (
	EnvActionStatus         = "status"
	EnvActionList           = "list"
	EnvActionPurge          = "purge"
	EnvActionSetGalleryRoot = "set_gallery_root"
)

// UserEnvRequest is the body of POST /usgromana/api/user-env.
type UserEnvRequest struct {
	Action   string `json:"action"`
	Username string `json:"user"`
	Enable   bool   `json:"enable"`
}

// SafetyTagRequest is the body of the tag administration endpoints.
type SafetyTagRequest struct {
	Path   string   `json:"path"`
	IsNSFW bool     `json:"is_nsfw"`
	Score  *float64 `json:"score,omitempty"`
	Label  string   `json:"label,omitempty"`
}

// PromptRequest is the body of POST /api/prompt.
type PromptRequest struct {
	Prompt    json.RawMessage `json:"prompt"`
	Number    *float64        `json:"number,omitempty"`
	Front     bool            `json:"front,omitempty"`
	ExtraData map[string]any  `json:"extra_data,omitempty"`
	PromptID  string          `json:"prompt_id,omitempty"`
}

// QueueMutationRequest is the body of POST /api/queue and POST /api/history.
type QueueMutationRequest struct {
	Clear  bool     `json:"clear"`
	Delete []string `json:"delete"`
}
