package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
		want  string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 50, 10, "[█████░░░░░]  50%"},
		{"full", 100, 4, "[████] 100%"},
		{"over 100 clamps", 140, 4, "[████] 100%"},
		{"negative clamps", -3, 4, "[░░░░]   0%"},
		{"tiny width clamps to 2", 50, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
		dim   bool
	}{
		{"0% normal", 0, 10, false},
		{"50% normal", 50, 10, false},
		{"100% normal", 100, 10, false},
		{"50% dimmed", 50, 10, true},
		{"over 100% clamps", 150, 10, false},
		{"negative clamps", -50, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderCompactBar(tt.pct, tt.width, tt.dim))
			assert.Equal(t, tt.width, strings.Count(got, filledBlock)+strings.Count(got, emptyBlock))
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
		})
	}
}
