package domain

import (
	"fmt"
	"time"
)

// LearningModule is a static CBT-I lesson in the learning catalog.
type LearningModule struct {
	ID          int
	Title       string
	Description string
	Minutes     int
	Topics      []string
}

// QuickTip is a short standalone sleep tip.
type QuickTip struct {
	Title       string
	Description string
	Category    string
}

var moduleCatalog = []LearningModule{
	{
		ID:          1,
		Title:       "Sleep Foundations",
		Description: "Understanding your sleep cycles and what affects them",
		Minutes:     15,
		Topics:      []string{"Sleep stages", "Circadian rhythms", "Three-factor model"},
	},
	{
		ID:          2,
		Title:       "Stimulus Control",
		Description: "Strengthen the association between your bed and sleep",
		Minutes:     12,
		Topics:      []string{"Bed = sleep only", "15-minute rule", "Fixed wake time"},
	},
	{
		ID:          3,
		Title:       "Sleep Window Optimization",
		Description: "Find your optimal time in bed for better efficiency",
		Minutes:     18,
		Topics:      []string{"Sleep restriction basics", "Safety guidelines", "Weekly adjustments"},
	},
	{
		ID:          4,
		Title:       "Cognitive Techniques",
		Description: "Manage racing thoughts and sleep anxiety",
		Minutes:     20,
		Topics:      []string{"Thought reframing", "Worry scheduling", "Paradoxical intention"},
	},
	{
		ID:          5,
		Title:       "Sleep Environment",
		Description: "Optimize your bedroom for better sleep",
		Minutes:     10,
		Topics:      []string{"Temperature control", "Light management", "Noise reduction"},
	},
}

var quickTips = []QuickTip{
	{
		Title:       "Keep a Fixed Wake Time",
		Description: "Even on weekends, maintain the same wake time to regulate your circadian rhythm.",
		Category:    "Schedule",
	},
	{
		Title:       "The 3-2-1 Rule",
		Description: "No large meals 3 hours before bed, no liquids 2 hours before, no screens 1 hour before.",
		Category:    "Evening Routine",
	},
	{
		Title:       "Cool Temperature",
		Description: "Keep your bedroom between 65-68°F (18-20°C) for optimal sleep temperature.",
		Category:    "Environment",
	},
	{
		Title:       "Wind-Down Buffer",
		Description: "Start relaxing activities 30-60 minutes before your target bedtime.",
		Category:    "Routine",
	},
}

// LearningModules returns the module catalog in lesson order.
func LearningModules() []LearningModule {
	out := make([]LearningModule, len(moduleCatalog))
	copy(out, moduleCatalog)
	return out
}

// LookupModule returns the module with the given id.
func LookupModule(id int) (LearningModule, error) {
	for _, m := range moduleCatalog {
		if m.ID == id {
			return m, nil
		}
	}
	return LearningModule{}, fmt.Errorf("%w: %d", ErrUnknownModule, id)
}

// QuickTips returns the tip list.
func QuickTips() []QuickTip {
	out := make([]QuickTip, len(quickTips))
	copy(out, quickTips)
	return out
}

// ModuleProgress is the stored progress of one learning module.
type ModuleProgress struct {
	ModuleID    int
	Percent     int
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// Completed reports whether the module has been finished.
func (p *ModuleProgress) Completed() bool {
	return p.CompletedAt != nil
}

// Advance raises progress to pct (clamped to 0..100). Progress never moves
// backwards; reaching 100 stamps CompletedAt once. Returns true when the
// stored value changed.
func (p *ModuleProgress) Advance(pct int, now time.Time) bool {
	pct = clamp(pct, 0, 100)
	if pct <= p.Percent {
		return false
	}
	p.Percent = pct
	p.UpdatedAt = now
	if pct == 100 && p.CompletedAt == nil {
		t := now
		p.CompletedAt = &t
	}
	return true
}

// ModuleStatus joins a catalog module with its stored progress.
type ModuleStatus struct {
	Module   LearningModule
	Progress ModuleProgress
}

// LearningOverview counts completed modules across the catalog.
type LearningOverview struct {
	Completed int
	Total     int
}
