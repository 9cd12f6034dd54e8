package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	transitionFrames        = 8
	transitionFrameInterval = 16 * time.Millisecond
)

type direction int

const (
	slideLeft direction = iota
	slideRight
)

// directionOf picks the slide direction for a state swap. Moving toward the
// list slides left, moving away slides right, matching the feel of drilling
// in and backing out.
func directionOf(from, to viewState) direction {
	if to == stateList {
		return slideLeft
	}
	if from == stateList {
		return slideRight
	}
	return slideLeft
}

// transition animates the swap between two state roots. The outgoing root is
// snapshotted on the first frame so its content stays stable while the new
// root slides in.
type transition struct {
	from  viewState
	to    viewState
	dir   direction
	frame int
	old   string // lazily captured snapshot of the outgoing root
}

func newTransition(from, to viewState, dir direction) *transition {
	return &transition{from: from, to: to, dir: dir}
}

// advance moves the animation one frame and reports whether it is still
// running.
func (t *transition) advance() bool {
	t.frame++
	return t.frame < transitionFrames
}

// render composes the outgoing and incoming roots at the current frame.
func (t *transition) render(m Model, width int) string {
	if width <= 0 {
		return m.renderState(t.to)
	}
	if t.old == "" {
		t.old = m.renderState(t.from)
	}
	next := m.renderState(t.to)

	offset := width * t.frame / transitionFrames
	if offset >= width {
		return next
	}

	if t.dir == slideRight {
		return composeSlide(next, t.old, width, width-offset)
	}
	return composeSlide(t.old, next, width, offset)
}

// composeSlide places right over left with the seam at cut columns from the
// right edge. Both panes are clipped line by line so the composite stays
// exactly width columns wide.
func composeSlide(left, right string, width, cut int) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		var ll, rl string
		if i < len(leftLines) {
			ll = leftLines[i]
		}
		if i < len(rightLines) {
			rl = rightLines[i]
		}
		b.WriteString(clipWidth(ll, width-cut))
		b.WriteString(clipWidth(rl, cut))
		if i < n-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// clipWidth truncates or pads s to exactly w display columns.
func clipWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = truncate(s, w)
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
