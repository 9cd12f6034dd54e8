package ui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cookiedeck/cookiedeck/internal/clip"
	"github.com/cookiedeck/cookiedeck/internal/cookie"
)

const (
	formFieldName = iota
	formFieldValue
	formFieldDomain
	formFieldPath
	formFieldCount
)

var formLabels = [formFieldCount]string{"Name", "Value", "Domain", "Path"}

// createForm is the overlay for drafting a new cookie. Submitting copies a
// Set-Cookie line to the clipboard; cookiedeck never writes to the browser
// store itself.
type createForm struct {
	fields  [formFieldCount]textinput.Model
	focused int
}

func newCreateForm(origin string) createForm {
	var f createForm
	for i := range f.fields {
		in := textinput.New()
		in.CharLimit = 512
		in.Width = 40
		f.fields[i] = in
	}
	f.fields[formFieldName].Placeholder = "session_id"
	f.fields[formFieldValue].Placeholder = "value"
	f.fields[formFieldDomain].SetValue(originDomain(origin))
	f.fields[formFieldPath].SetValue("/")
	f.fields[formFieldName].Focus()
	return f
}

func (f createForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// handleFormKey routes keys while the create form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := *m.form

	switch msg.String() {
	case "esc", "ctrl+c":
		m.form = nil
		return m, nil

	case "tab", "down":
		f.setFocus((f.focused + 1) % formFieldCount)
		m.form = &f
		return m, nil

	case "shift+tab", "up":
		f.setFocus((f.focused + formFieldCount - 1) % formFieldCount)
		m.form = &f
		return m, nil

	case "enter":
		record, ok := f.record(m.origin())
		if !ok {
			f.fields[formFieldName].Placeholder = "name is required"
			f.setFocus(formFieldName)
			m.form = &f
			return m, nil
		}
		m.form = nil
		return m, copySetCookieCmd(record)
	}

	var cmd tea.Cmd
	f.fields[f.focused], cmd = f.fields[f.focused].Update(msg)
	m.form = &f
	return m, cmd
}

func (f *createForm) setFocus(i int) {
	f.fields[f.focused].Blur()
	f.focused = i
	f.fields[i].Focus()
}

// record builds the drafted cookie, defaulting domain and path from the
// watched origin.
func (f createForm) record(origin string) (cookie.Record, bool) {
	name := strings.TrimSpace(f.fields[formFieldName].Value())
	if name == "" {
		return cookie.Record{}, false
	}
	domain := strings.TrimSpace(f.fields[formFieldDomain].Value())
	if domain == "" {
		domain = originDomain(origin)
	}
	path := strings.TrimSpace(f.fields[formFieldPath].Value())
	if path == "" {
		path = "/"
	}
	return cookie.Record{
		Name:   name,
		Value:  f.fields[formFieldValue].Value(),
		Domain: domain,
		Path:   path,
		Secure: strings.HasPrefix(origin, "https://"),
	}, true
}

func (f createForm) render(theme Theme, width int) string {
	st := theme.Styles()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + st.AccentText.Render("New cookie"))
	b.WriteString("\n\n")
	for i, in := range f.fields {
		label := padRight(formLabels[i], 8)
		if i == f.focused {
			b.WriteString("  " + st.Text.Render(label) + in.View())
		} else {
			b.WriteString("  " + st.MutedText.Render(label) + in.View())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func copySetCookieCmd(r cookie.Record) tea.Cmd {
	return func() tea.Msg {
		line, err := clip.CopySetCookie(r)
		return copiedMsg{header: line, count: 1, err: err}
	}
}

func originDomain(origin string) string {
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
