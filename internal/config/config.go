// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package config

import (
	"time"
)

// StructuredConfig is the complete server configuration.
type StructuredConfig struct {
	App App `envPrefix:"APP_"`

	Server Server `envPrefix:"SERVER_"`

	Storage Storage `envPrefix:"STORAGE_"`

	Queue Queue `envPrefix:"QUEUE_"`

	Safety Safety `envPrefix:"SAFETY_"`

	Security Security `envPrefix:"SECURITY_"`

	Adapter Adapter `envPrefix:"ADAPTER_"`

	JSONFilePath string `env:"CONFIG"`
}

// App holds token, identity and logging settings.
type App struct {
	Version string `env:"VERSION"`

	// TokenAlgorithm is HS256 (shared secret) or RS256 (PEM key pair).
	TokenAlgorithm string `env:"TOKEN_ALGORITHM"`

	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	TokenPrivateKeyFile string `env:"TOKEN_PRIVATE_KEY_FILE"`

	TokenPublicKeyFile string `env:"TOKEN_PUBLIC_KEY_FILE"`

	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// MaxTokenDuration caps tokens minted through /generate_token.
	MaxTokenDuration time.Duration `env:"MAX_TOKEN_DURATION"`

	ClaimSubject string `env:"CLAIM_SUBJECT"`

	ClaimUsername string `env:"CLAIM_USERNAME"`

	DisableGuest bool `env:"DISABLE_GUEST"`

	// SeparateUsers prefixes every output filename with the owner id.
	SeparateUsers bool `env:"SEPARATE_USERS"`

	FreeMemoryOnLogout bool `env:"FREE_MEMORY_ON_LOGOUT"`

	LogLevel string `env:"LOG_LEVEL"`

	LogFile string `env:"LOG_FILE"`
}

type Server struct {
	HTTPAddress string `env:"ADDRESS"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// TrustProxyHeaders enables X-Forwarded-For / X-Real-IP for client
	// address resolution.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS"`
}

// Storage lists every file and directory the server owns.
type Storage struct {
	UsersFile string `env:"USERS_FILE" json:"users_file"`

	GroupsFile string `env:"GROUPS_FILE" json:"groups_file"`

	WhitelistFile string `env:"WHITELIST_FILE" json:"whitelist_file"`

	BlacklistFile string `env:"BLACKLIST_FILE" json:"blacklist_file"`

	UsersRoot string `env:"USERS_ROOT" json:"users_root"`

	OutputDir string `env:"OUTPUT_DIR" json:"output_dir"`

	InputDir string `env:"INPUT_DIR" json:"input_dir"`

	TempDir string `env:"TEMP_DIR" json:"temp_dir"`

	// WorkflowDirs hold the shared workflows every user can load. Private
	// workflows with the same name take precedence.
	WorkflowDirs []string `env:"WORKFLOW_DIRS" envSeparator:"," json:"workflow_dirs"`
}

type Queue struct {
	MaxHistorySize int `env:"MAX_HISTORY_SIZE"`

	// FallbackOwner owns entries submitted without a resolved identity.
	FallbackOwner string `env:"FALLBACK_OWNER"`

	Workers int `env:"WORKERS"`

	TakeTimeout time.Duration `env:"TAKE_TIMEOUT"`
}

type Safety struct {
	ClassifierURL string `env:"CLASSIFIER_URL"`

	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT"`

	Threshold float64 `env:"THRESHOLD"`

	EnforcementCacheSize int `env:"ENFORCEMENT_CACHE_SIZE"`

	LockStripes int `env:"LOCK_STRIPES"`
}

type Security struct {
	// BlacklistAfterAttempts is the failed-login count that blacklists an
	// address. A negative value disables auto-blacklisting.
	BlacklistAfterAttempts int `env:"BLACKLIST_AFTER_ATTEMPTS" json:"blacklist_after_attempts"`
}

// Adapter configures the execution engine endpoint.
type Adapter struct {
	ExecutorURL string `env:"EXECUTOR_URL"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig builds the configuration from environment variables,
// command-line flags and an optional JSON file, in that order of priority,
// fills in defaults and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// Defaults returns the built-in configuration. Merging gives it the lowest
// priority.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:          "dev",
			TokenAlgorithm:   "HS256",
			TokenDuration:    12 * time.Hour,
			MaxTokenDuration: 8760 * time.Hour,
			ClaimSubject:     "id",
			ClaimUsername:    "username",
			LogLevel:         "info",
		},
		Server: Server{
			HTTPAddress:     ":8188",
			RequestTimeout:  time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: Storage{
			UsersFile:     "usgromana/users.json",
			GroupsFile:    "usgromana/groups.json",
			WhitelistFile: "usgromana/whitelist.txt",
			BlacklistFile: "usgromana/blacklist.txt",
			UsersRoot:     "users",
			OutputDir:     "output",
			InputDir:      "input",
			TempDir:       "temp",
			WorkflowDirs:  []string{"user/default/workflows", "user_data/workflows"},
		},
		Queue: Queue{
			MaxHistorySize: 10000,
			FallbackOwner:  "public",
			Workers:        1,
			TakeTimeout:    time.Second,
		},
		Safety: Safety{
			ClassifierTimeout:    30 * time.Second,
			Threshold:            0.5,
			EnforcementCacheSize: 1024,
			LockStripes:          64,
		},
		Security: Security{
			BlacklistAfterAttempts: 5,
		},
	}
}
