package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cookiedeck/cookiedeck/internal/cookie"
	"github.com/cookiedeck/cookiedeck/internal/perm"
)

// renderHeader renders the title bar: logo, origin, cookie count, and the
// last fetch error when one is pending. Clicking this bar copies the header
// string for the listed cookies.
func (m Model) renderHeader() string {
	st := m.theme.Styles()

	left := st.Logo.Render("cookiedeck")
	if o := m.origin(); o != "" {
		left += "  " + st.AccentText.Render(truncateMiddle(o, 40))
	}

	var right string
	switch {
	case m.flash != "":
		right = st.SuccessText.Render(m.flash)
	case m.ready() && m.state == stateList:
		right = st.MutedText.Render(pluralize(len(m.records), "cookie"))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := st.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)

	if m.lastErr != nil {
		bar += "\n" + st.DangerText.Render(truncate("fetch failed: "+m.lastErr.Error(), m.width))
	}
	return bar
}

// renderFooter renders the key help line.
func (m Model) renderFooter() string {
	st := m.theme.Styles()

	var keys []string
	switch {
	case m.form != nil:
		keys = []string{"tab next field", "enter copy Set-Cookie", "esc close"}
	case m.promptingOrigin:
		keys = []string{"enter watch origin", "esc quit"}
	case m.state == stateNoPermission:
		keys = []string{"o grant origin", "a grant all", "q quit"}
	default:
		keys = []string{"c copy header", "n new cookie", "r reload", "t theme", "q quit"}
	}
	return st.Footer.Width(m.width).Render(strings.Join(keys, "  ·  "))
}

// renderList renders one row per cookie, sorted upstream by the registry.
func (m Model) renderList() string {
	st := m.theme.Styles()

	nameWidth := 24
	valueWidth := m.width - nameWidth - 30
	if valueWidth < 10 {
		valueWidth = 10
	}

	var b strings.Builder
	for _, r := range m.records {
		name := st.Text.Render(padRight(truncate(r.Name, nameWidth), nameWidth))
		value := st.MutedText.Render(padRight(truncate(r.Value, valueWidth), valueWidth))
		b.WriteString("  " + name + " " + value + " " + st.Flag.Render(recordFlags(r)))
		b.WriteString("\n")
		b.WriteString("  " + st.FaintText.Render(padRight("", nameWidth)) + " " +
			st.FaintText.Render(truncate(r.Domain+r.Path, valueWidth)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// recordFlags renders the attribute badges for a cookie row.
func recordFlags(r cookie.Record) string {
	var flags []string
	if r.Secure {
		flags = append(flags, "secure")
	}
	if r.HTTPOnly {
		flags = append(flags, "httpOnly")
	}
	if r.SameSite != "" {
		flags = append(flags, strings.ToLower(string(r.SameSite)))
	}
	if r.Session() {
		flags = append(flags, "session")
	}
	return strings.Join(flags, " ")
}

func (m Model) renderEmpty() string {
	st := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + st.MutedText.Render("No cookies for this origin."))
	b.WriteString("\n\n")
	b.WriteString("  " + st.FaintText.Render("Press n to create one, or r to reload."))
	return b.String()
}

// renderNoPermission explains why the store is unreadable and offers the two
// grant actions. A running browser holds locks on its store, so that is
// surfaced as a hint.
func (m Model) renderNoPermission() string {
	st := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + st.WarningText.Render("No access to the "+m.browserLabel+" cookie store."))
	b.WriteString("\n\n")
	b.WriteString("  " + st.Text.Render("o") + st.MutedText.Render("  grant access to "+displayOrigin(m.origin())))
	b.WriteString("\n")
	b.WriteString("  " + st.Text.Render("a") + st.MutedText.Render("  grant access to all origins"))
	b.WriteString("\n")
	if m.browserBusy {
		b.WriteString("\n  " + st.FaintText.Render(m.browserLabel+" appears to be running; it may hold the store locked."))
		b.WriteString("\n")
	}
	if m.permNote != "" {
		b.WriteString("\n  " + st.DangerText.Render(wrap(m.permNote, m.width-4)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderOriginPrompt() string {
	st := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + st.Text.Render("Which origin should be watched?"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.originInput.View())
	b.WriteString("\n")
	return b.String()
}

func displayOrigin(origin string) string {
	if origin == "" || origin == perm.AllOrigins {
		return "this origin"
	}
	return origin
}

func padRight(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// wrap breaks text at word boundaries so notes fit the available width.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n  ")
}
