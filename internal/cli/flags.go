package cli

import (
	"strings"

	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/spf13/pflag"
)

// activityList collects repeated --activity flags in the order given.
// Duplicates are dropped.
type activityList []domain.ActivityKey

var _ pflag.Value = (*activityList)(nil)

func (l *activityList) String() string {
	parts := make([]string, len(*l))
	for i, k := range *l {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

func (l *activityList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		key, err := domain.ParseActivityKey(part)
		if err != nil {
			return err
		}
		if !l.contains(key) {
			*l = append(*l, key)
		}
	}
	return nil
}

func (l *activityList) Type() string { return "activity" }

func (l *activityList) contains(key domain.ActivityKey) bool {
	for _, k := range *l {
		if k == key {
			return true
		}
	}
	return false
}

// clockFlag binds an HH:MM flag to a domain.ClockTime.
type clockFlag struct {
	dst *domain.ClockTime
}

var _ pflag.Value = clockFlag{}

func newClockFlag(dst *domain.ClockTime, def domain.ClockTime) clockFlag {
	*dst = def
	return clockFlag{dst: dst}
}

func (f clockFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return f.dst.String()
}

func (f clockFlag) Set(s string) error {
	c, err := domain.ParseClockTime(s)
	if err != nil {
		return err
	}
	*f.dst = c
	return nil
}

func (f clockFlag) Type() string { return "HH:MM" }
