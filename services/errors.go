package services

import (
	"errors"
	"fmt"

	"copyforge/models"
)

// ErrNotConfigured is returned when a required model credential is missing.
// It is raised before any remote call and is fatal to the triggering request
// only.
var ErrNotConfigured = errors.New("completion service not configured")

// UnknownChannelError reports a channel identifier with no registered rule
// set.
type UnknownChannelError struct {
	Channel models.Channel
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("unknown channel: %q", e.Channel)
}

// GenerationError wraps a failure of the primary content-generation call. It
// aborts the whole pipeline invocation; no partial candidate list is
// returned. It is distinct from a legitimate empty result.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
