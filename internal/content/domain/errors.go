package domain

import (
	apperrors "github.com/nexusai/backoffice/internal/errors"
)

var (
	// ErrAgentNotFound indicates the requested agent does not exist.
	ErrAgentNotFound = apperrors.Wrap(apperrors.ErrNotFound, "agent not found")

	// ErrPromptNotFound indicates the requested prompt does not exist. Also
	// returned when an agent has no active prompt revision.
	ErrPromptNotFound = apperrors.Wrap(apperrors.ErrNotFound, "agent prompt not found")
)
