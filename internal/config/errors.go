package config

import "errors"

var (
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidQueueConfigs   = errors.New("invalid queue configuration")
	ErrInvalidSafetyConfigs  = errors.New("invalid safety configuration")
)
