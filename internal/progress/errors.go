package progress

import "errors"

var (
	// ErrTaskNotFound is returned when CompleteTask references an unknown task.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAlreadyCompleted is returned when CompleteTask is called on a task
	// that is not pending. No state is mutated; this is the guard that keeps
	// a double-tap from awarding XP twice.
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrInvalidCatalog is returned at construction time for a malformed
	// achievement catalog or XP table. Configuration errors are fatal at
	// startup, never skipped.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrTitleLocked is returned when selecting a title that has not been
	// unlocked as an achievement yet.
	ErrTitleLocked = errors.New("title not unlocked")

	// ErrAvatarLocked is returned when selecting an avatar gated behind a
	// higher level.
	ErrAvatarLocked = errors.New("avatar not unlocked")

	// ErrUnknownAvatar is returned when the requested avatar is not in the
	// avatar catalog at all.
	ErrUnknownAvatar = errors.New("unknown avatar")
)
