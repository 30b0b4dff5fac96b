package coach

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var defaultScript []byte

// Rule maps keyword terms to a canned reply. A rule matches when every
// All term and at least one Any term occur in the lowercased question.
// An empty list places no constraint.
type Rule struct {
	Name  string   `yaml:"name"`
	All   []string `yaml:"all"`
	Any   []string `yaml:"any"`
	Reply string   `yaml:"reply"`
}

// Script is the full coach dialogue: greeting, suggested openers, ordered
// rules and the reply used when nothing matches.
type Script struct {
	Greeting       string   `yaml:"greeting"`
	QuickQuestions []string `yaml:"quick_questions"`
	Rules          []Rule   `yaml:"rules"`
	Fallback       string   `yaml:"fallback"`
}

// DefaultScript returns the script compiled into the binary.
func DefaultScript() (*Script, error) {
	return ParseScript(defaultScript)
}

// LoadScript reads a script from path. An empty path yields the default
// script.
func LoadScript(path string) (*Script, error) {
	if path == "" {
		return DefaultScript()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coach script: %w", err)
	}
	return ParseScript(raw)
}

// ParseScript decodes and validates a YAML script. Rule terms are
// lowercased so matching is case-insensitive.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse coach script yaml: %w", err)
	}
	for i := range s.Rules {
		s.Rules[i].All = lowerAll(s.Rules[i].All)
		s.Rules[i].Any = lowerAll(s.Rules[i].Any)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every reply path produces text.
func (s *Script) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Greeting) == "" {
		errs = append(errs, errors.New("greeting is empty"))
	}
	if strings.TrimSpace(s.Fallback) == "" {
		errs = append(errs, errors.New("fallback is empty"))
	}
	for i, r := range s.Rules {
		if len(r.All) == 0 && len(r.Any) == 0 {
			errs = append(errs, fmt.Errorf("rule %d (%s) has no terms", i, r.Name))
		}
		if strings.TrimSpace(r.Reply) == "" {
			errs = append(errs, fmt.Errorf("rule %d (%s) has no reply", i, r.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid coach script: %w", errors.Join(errs...))
	}
	return nil
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
