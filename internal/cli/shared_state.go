package cli

import "time"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Days shown by the diary list and summarized on the home view.
	DiaryDays int

	// Now is the clock used for relative dates.
	Now func() time.Time
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:       app,
		DiaryDays: 7,
		Now:       time.Now,
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
