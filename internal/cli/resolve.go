package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/restwell/internal/repository"
)

// diaryLookupDays bounds the prefix search for short diary IDs.
const diaryLookupDays = 3660

// resolveDiaryID resolves a diary entry identifier which can be:
//   - A full UUID (passed through directly)
//   - A unique UUID prefix, as printed by "diary list"
func resolveDiaryID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if len(input) == 36 {
		return input, nil
	}
	if input == "" {
		return "", fmt.Errorf("diary entry id is required")
	}

	entries, err := app.Diary.ListRecent(ctx, diaryLookupDays)
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range entries {
		if !strings.HasPrefix(e.ID, input) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("diary id prefix %q is ambiguous", input)
		}
		match = e.ID
	}
	if match == "" {
		return "", fmt.Errorf("diary entry %q: %w", input, repository.ErrNotFound)
	}
	return match, nil
}

// resolveModuleID parses a learning module number.
func resolveModuleID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(input), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("module id must be a positive number, got %q", input)
	}
	return id, nil
}
