package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a 0..100 percentage.
// Wind-down progress fills toward done, so the bar is purple while filling
// and green once full.
func RenderProgress(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StylePurple
	if pct == 100 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderCompactBar renders a bar with no brackets or label, dimmed when
// the row is inactive.
func RenderCompactBar(pct int, width int, dim bool) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	style := StyleGreen
	if dim {
		style = StyleDim
	}
	return style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
