package contract

import "errors"

var (
	ErrMissingAPIKey  = errors.New("api key is not configured")
	ErrMissingBaseURL = errors.New("backend base url is not configured")
	ErrAccessDenied   = errors.New("backend denied access")
	ErrBackend        = errors.New("backend request failed")
	ErrUnreachable    = errors.New("calculation engine unreachable")
)
