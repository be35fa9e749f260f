package queue

import "errors"

var (
	ErrUnknownTask   = errors.New("unknown task id")
	ErrInvalidPrompt = errors.New("prompt is not a JSON object or array")
)
