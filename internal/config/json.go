package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration.
// Durations are written as Go duration strings ("12h", "30s").
type StructuredJSONConfig struct {
	App struct {
		TokenAlgorithm      string   `json:"token_algorithm"`
		TokenSignKey        string   `json:"token_sign_key"`
		TokenPrivateKeyFile string   `json:"token_private_key_file"`
		TokenPublicKeyFile  string   `json:"token_public_key_file"`
		TokenDuration       Duration `json:"token_duration"`
		MaxTokenDuration    Duration `json:"max_token_duration"`
		ClaimSubject        string   `json:"claim_subject"`
		ClaimUsername       string   `json:"claim_username"`
		DisableGuest        bool     `json:"disable_guest"`
		SeparateUsers       bool     `json:"separate_users"`
		FreeMemoryOnLogout  bool     `json:"free_memory_on_logout"`
		LogLevel            string   `json:"log_level"`
		LogFile             string   `json:"log_file"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		ShutdownTimeout   Duration `json:"shutdown_timeout"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Storage Storage `json:"storage,omitempty"`

	Queue struct {
		MaxHistorySize int      `json:"max_history_size"`
		FallbackOwner  string   `json:"fallback_owner"`
		Workers        int      `json:"workers"`
		TakeTimeout    Duration `json:"take_timeout"`
	} `json:"queue,omitempty"`

	Safety struct {
		ClassifierURL        string   `json:"classifier_url"`
		ClassifierTimeout    Duration `json:"classifier_timeout"`
		Threshold            float64  `json:"threshold"`
		EnforcementCacheSize int      `json:"enforcement_cache_size"`
		LockStripes          int      `json:"lock_stripes"`
	} `json:"safety,omitempty"`

	Security Security `json:"security,omitempty"`

	Adapter struct {
		ExecutorURL    string   `json:"executor_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenAlgorithm:      j.App.TokenAlgorithm,
			TokenSignKey:        j.App.TokenSignKey,
			TokenPrivateKeyFile: j.App.TokenPrivateKeyFile,
			TokenPublicKeyFile:  j.App.TokenPublicKeyFile,
			TokenDuration:       time.Duration(j.App.TokenDuration),
			MaxTokenDuration:    time.Duration(j.App.MaxTokenDuration),
			ClaimSubject:        j.App.ClaimSubject,
			ClaimUsername:       j.App.ClaimUsername,
			DisableGuest:        j.App.DisableGuest,
			SeparateUsers:       j.App.SeparateUsers,
			FreeMemoryOnLogout:  j.App.FreeMemoryOnLogout,
			LogLevel:            j.App.LogLevel,
			LogFile:             j.App.LogFile,
		},
		Server: Server{
			HTTPAddress:       j.Server.HTTPAddress,
			RequestTimeout:    time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout:   time.Duration(j.Server.ShutdownTimeout),
			TrustProxyHeaders: j.Server.TrustProxyHeaders,
		},
		Storage: j.Storage,
		Queue: Queue{
			MaxHistorySize: j.Queue.MaxHistorySize,
			FallbackOwner:  j.Queue.FallbackOwner,
			Workers:        j.Queue.Workers,
			TakeTimeout:    time.Duration(j.Queue.TakeTimeout),
		},
		Safety: Safety{
			ClassifierURL:        j.Safety.ClassifierURL,
			ClassifierTimeout:    time.Duration(j.Safety.ClassifierTimeout),
			Threshold:            j.Safety.Threshold,
			EnforcementCacheSize: j.Safety.EnforcementCacheSize,
			LockStripes:          j.Safety.LockStripes,
		},
		Security: j.Security,
		Adapter: Adapter{
			ExecutorURL:    j.Adapter.ExecutorURL,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from either a duration
// string or a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
