package util

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrInvalidGoal      = errors.New("invalid goal")
	ErrInvalidSession   = errors.New("invalid session")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStorageDisabled  = errors.New("export storage not configured")
)
