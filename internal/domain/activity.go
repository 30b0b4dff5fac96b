package domain

import (
	"fmt"
	"strings"
)

// Activity is an immutable wind-down catalog entry.
type Activity struct {
	Key             ActivityKey
	Name            string
	Label           string // short label used by the activity selector
	DurationSeconds int
	Description     string
	Guide           string
}

var activityCatalog = []Activity{
	{
		Key:             ActivityBreathing,
		Name:            "Box Breathing",
		Label:           "Breathing",
		DurationSeconds: 240,
		Description:     "Inhale 4s • Hold 4s • Exhale 4s • Hold 4s",
		Guide:           "Follow the rhythm: breathe in 4s, hold 4s, out 4s, hold 4s.",
	},
	{
		Key:             ActivityJournaling,
		Name:            "Gratitude Journal",
		Label:           "Journal",
		DurationSeconds: 300,
		Description:     "Reflect on 3 positive moments from today.",
		Guide:           "Write three things you're grateful for today. Focus on specific moments, people, or experiences.",
	},
	{
		Key:             ActivityMeditation,
		Name:            "Body Scan",
		Label:           "Meditation",
		DurationSeconds: 600,
		Description:     "Progressive relaxation from toes to head.",
		Guide:           "Lie down comfortably. Starting with your toes, notice each part of your body and release tension as you move upward to your head.",
	},
}

// Activities returns the catalog in display order. The slice is a copy.
func Activities() []Activity {
	out := make([]Activity, len(activityCatalog))
	copy(out, activityCatalog)
	return out
}

// ActivityKeys returns the registry keys in display order.
func ActivityKeys() []ActivityKey {
	keys := make([]ActivityKey, len(activityCatalog))
	for i, a := range activityCatalog {
		keys[i] = a.Key
	}
	return keys
}

// LookupActivity returns the catalog entry for key.
func LookupActivity(key ActivityKey) (Activity, error) {
	for _, a := range activityCatalog {
		if a.Key == key {
			return a, nil
		}
	}
	return Activity{}, fmt.Errorf("%w: %q", ErrUnknownActivityKey, key)
}

// ParseActivityKey maps user input ("breathing", "Journal", "breath") to a
// registry key. Matching is case-insensitive on the key and short label.
func ParseActivityKey(s string) (ActivityKey, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "breath":
		return ActivityBreathing, nil
	case "journal":
		return ActivityJournaling, nil
	}
	for _, a := range activityCatalog {
		if norm == string(a.Key) || norm == strings.ToLower(a.Label) {
			return a.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivityKey, s)
}

// activityIndex returns the catalog position of key, or -1.
func activityIndex(key ActivityKey) int {
	for i, a := range activityCatalog {
		if a.Key == key {
			return i
		}
	}
	return -1
}
