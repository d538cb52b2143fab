package components

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/go-minishell/internal/tui"
)

// MaxRows is the most rows the textarea keeps; anything past it is dropped.
const MaxRows = 10000

// tabGlyph stands in for '\t' inside the textarea, which expands tabs to
// spaces on input.
const tabGlyph = '⇥'

// ErrUnsupportedContent is returned by NewEditor for content the editor
// cannot hold without altering it.
var ErrUnsupportedContent = errors.New("file cannot be edited")

// EditorModel is a full-screen text editor around the bubbles textarea.
// ctrl+s saves through the save callback and closes; esc and ctrl+c
// close without saving.
type EditorModel struct {
	title    string
	textarea textarea.Model
	save     func(string) error
	saved    bool
	err      error

	original string
	loaded   string
	crlf     bool
}

// NewEditor creates an editor pre-filled with content. Saving an
// unmodified buffer writes content back byte for byte.
func NewEditor(title, content string, save func(string) error) (EditorModel, error) {
	crlf, err := checkEditable(content)
	if err != nil {
		return EditorModel{}, err
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.SetValue(encode(content, crlf))
	ta.Focus()

	return EditorModel{
		title:    title,
		textarea: ta,
		save:     save,
		original: content,
		loaded:   ta.Value(),
		crlf:     crlf,
	}, nil
}

// checkEditable reports whether content uses CRLF line endings and
// rejects what the textarea would rewrite or drop.
func checkEditable(content string) (bool, error) {
	if !utf8.ValidString(content) {
		return false, fmt.Errorf("%w: not valid UTF-8", ErrUnsupportedContent)
	}

	crlf := false
	if cr := strings.Count(content, "\r"); cr > 0 {
		pairs := strings.Count(content, "\r\n")
		if cr != pairs || pairs != strings.Count(content, "\n") {
			return false, fmt.Errorf("%w: contains carriage returns", ErrUnsupportedContent)
		}
		crlf = true
	}

	if rows := strings.Count(content, "\n") + 1; rows > MaxRows {
		return false, fmt.Errorf("%w: %d lines, at most %d fit", ErrUnsupportedContent, rows, MaxRows)
	}

	for _, r := range content {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r == tabGlyph || r == utf8.RuneError:
			return false, fmt.Errorf("%w: contains %U", ErrUnsupportedContent, r)
		case unicode.IsControl(r):
			return false, fmt.Errorf("%w: contains control character %U", ErrUnsupportedContent, r)
		}
	}
	return crlf, nil
}

func encode(content string, crlf bool) string {
	if crlf {
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	return strings.ReplaceAll(content, "\t", string(tabGlyph))
}

func decode(value string, crlf bool) string {
	value = strings.ReplaceAll(value, string(tabGlyph), "\t")
	if crlf {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	return value
}

// Init initializes the component
func (m EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(msg.Width)
		// header, error and help lines
		if h := msg.Height - 4; h > 0 {
			m.textarea.SetHeight(h)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlS:
			if err := m.save(m.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.saved = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			m.textarea.InsertRune(tabGlyph)
			return m, nil
		case tea.KeyRunes:
			// pasted text keeps its tabs
			runes := make([]rune, len(msg.Runes))
			for i, r := range msg.Runes {
				if r == '\t' {
					r = tabGlyph
				}
				runes[i] = r
			}
			msg.Runes = runes
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the component
func (m EditorModel) View() string {
	if m.saved {
		return ""
	}

	var b strings.Builder
	b.WriteString(tui.HeaderStyle.Render("nano - " + m.title))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(tui.ErrorStyle.Render("save failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(tui.HelpStyle.Render("ctrl+s save and exit • esc discard"))
	return b.String()
}

// Value returns the buffer as it would be saved.
func (m EditorModel) Value() string {
	current := m.textarea.Value()
	if current == m.loaded {
		return m.original
	}
	return decode(current, m.crlf)
}

// Saved returns whether the buffer was written
func (m EditorModel) Saved() bool {
	return m.saved
}

// Err returns the last save error
func (m EditorModel) Err() error {
	return m.err
}
