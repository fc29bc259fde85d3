package content

import "errors"

var (
	ErrUnknownSection = errors.New("unknown content section")
	ErrUnavailable    = errors.New("content source is not configured")
	ErrUpstream       = errors.New("content source request failed")
)
