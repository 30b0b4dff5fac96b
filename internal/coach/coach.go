package coach

import "strings"

// FallbackRule is the rule name reported when no scripted rule matched.
const FallbackRule = "fallback"

// Coach answers questions by walking the script rules in order.
type Coach struct {
	script *Script
}

// New returns a Coach over script.
func New(script *Script) *Coach {
	return &Coach{script: script}
}

// Greeting is the opening assistant message.
func (c *Coach) Greeting() string { return c.script.Greeting }

// QuickQuestions returns the suggested opening questions.
func (c *Coach) QuickQuestions() []string {
	out := make([]string, len(c.script.QuickQuestions))
	copy(out, c.script.QuickQuestions)
	return out
}

// Reply returns the canned answer for question.
func (c *Coach) Reply(question string) string {
	_, reply := c.Match(question)
	return reply
}

// Match returns the name of the first matching rule with its reply, or
// FallbackRule and the fallback text.
func (c *Coach) Match(question string) (rule, reply string) {
	q := strings.ToLower(question)
	for _, r := range c.script.Rules {
		if r.matches(q) {
			return r.Name, r.Reply
		}
	}
	return FallbackRule, c.script.Fallback
}

func (r Rule) matches(q string) bool {
	for _, term := range r.All {
		if !strings.Contains(q, term) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, term := range r.Any {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
