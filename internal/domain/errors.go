package domain

import "errors"

var (
	// ErrUnknownActivityKey indicates a lookup outside the closed activity
	// registry. The UI never offers such a key, so seeing it is a bug.
	ErrUnknownActivityKey = errors.New("unknown activity key")

	// ErrSessionAlreadyComplete is returned when starting an activity whose
	// countdown already reached zero. The caller should reset first.
	ErrSessionAlreadyComplete = errors.New("session already complete; reset to start again")

	// ErrInvalidClockTime indicates a diary time that is not H:MM or HH:MM.
	ErrInvalidClockTime = errors.New("invalid clock time")

	// ErrInvalidDiaryEntry indicates a diary entry that failed validation.
	ErrInvalidDiaryEntry = errors.New("invalid diary entry")

	// ErrUnknownModule indicates a learning module id outside the catalog.
	ErrUnknownModule = errors.New("unknown learning module")

	// ErrEmptyMessage is returned when a coach message is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrCoachBusy is returned when sending while a coach reply is pending.
	ErrCoachBusy = errors.New("coach is still typing")
)
