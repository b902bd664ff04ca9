package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weedbox/mailshell"
)

type composeField int

const (
	fieldTo composeField = iota
	fieldCc
	fieldBcc
	fieldSubject
	fieldBody
	fieldAttach
	fieldCount
)

// suggestionMsg carries a finished suggestion back to the composer that asked for it.
type suggestionMsg struct {
	composer *mailshell.Composer
	text     string
	err      error
}

// composeModel edits one draft.
type composeModel struct {
	composer *mailshell.Composer
	keys     *ComposeKeyMap

	inputs  [fieldCount]textinput.Model // fieldBody slot is unused
	body    textarea.Model
	focus   composeField
	spinner spinner.Model

	suggesting bool
	cancel     context.CancelFunc
	notice     string // validation message of the last send attempt
}

func newComposeModel(d mailshell.Draft, opts mailshell.ComposerOptions) *composeModel {
	m := &composeModel{
		composer: mailshell.NewComposer(d, opts),
		keys:     DefaultComposeKeyMap(),
		body:     textarea.New(),
		spinner:  spinner.New(),
	}

	placeholders := map[composeField]string{
		fieldTo:      "recipient@example.com",
		fieldCc:      "cc@example.com",
		fieldBcc:     "bcc@example.com",
		fieldSubject: "Email subject",
		fieldAttach:  "/path/to/file, /path/to/other",
	}
	values := map[composeField]string{
		fieldTo:      d.To,
		fieldCc:      d.Cc,
		fieldBcc:     d.Bcc,
		fieldSubject: d.Subject,
	}
	for f, ph := range placeholders {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.Prompt = ""
		ti.CharLimit = 512
		ti.Width = 60
		ti.SetValue(values[f])
		m.inputs[f] = ti
	}

	m.body.Placeholder = "Type your message here..."
	m.body.SetWidth(72)
	m.body.SetHeight(8)
	m.body.SetValue(d.Body)

	m.spinner.Spinner = spinner.Dot
	m.focusField(fieldTo)
	return m
}

func (m *composeModel) focusField(f composeField) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.body.Blur()

	m.focus = f
	if f == fieldBody {
		return m.body.Focus()
	}
	return m.inputs[f].Focus()
}

// sync copies the widget contents into the draft.
func (m *composeModel) sync() {
	m.composer.Update(func(d *mailshell.Draft) {
		d.To = m.inputs[fieldTo].Value()
		d.Cc = m.inputs[fieldCc].Value()
		d.Bcc = m.inputs[fieldBcc].Value()
		d.Subject = m.inputs[fieldSubject].Value()
		d.Body = m.body.Value()
	})
}

// close drops the draft and any pending suggestion.
func (m *composeModel) close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.composer.Close()
}

type composeResult int

const (
	composeContinue composeResult = iota
	composeSent
	composeSaved
	composeDiscarded
)

func (m *composeModel) update(msg tea.Msg) (composeResult, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionMsg:
		if msg.composer != m.composer {
			return composeContinue, nil
		}
		m.suggesting = false
		m.cancel = nil
		if msg.err == nil && m.composer.ApplySuggestion(msg.text) {
			m.body.SetValue(msg.text)
		}
		return composeContinue, nil

	case spinner.TickMsg:
		if !m.suggesting {
			return composeContinue, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return composeContinue, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.close()
			return composeDiscarded, nil

		case key.Matches(msg, m.keys.Next):
			return composeContinue, m.focusField((m.focus + 1) % fieldCount)

		case key.Matches(msg, m.keys.Prev):
			return composeContinue, m.focusField((m.focus + fieldCount - 1) % fieldCount)

		case key.Matches(msg, m.keys.Send):
			m.sync()
			if err := m.composer.Send(); err != nil {
				if errors.Is(err, mailshell.ErrMissingRequiredFields) {
					m.notice = mailshell.MissingFieldsMessage
				} else {
					m.notice = err.Error()
				}
				return composeContinue, nil
			}
			m.close()
			return composeSent, nil

		case key.Matches(msg, m.keys.Save):
			m.sync()
			m.composer.Save()
			return composeSaved, nil

		case key.Matches(msg, m.keys.Suggest):
			if m.suggesting {
				return composeContinue, nil
			}
			return composeContinue, m.suggest()

		case key.Matches(msg, m.keys.Detach):
			atts := m.composer.Draft().Attachments
			if len(atts) > 0 {
				m.composer.RemoveAttachment(atts[len(atts)-1].ID)
			}
			return composeContinue, nil

		case m.focus == fieldAttach && key.Matches(msg, m.keys.Attach):
			m.attach()
			return composeContinue, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldBody {
		m.body, cmd = m.body.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return composeContinue, cmd
}

func (m *composeModel) suggest() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.suggesting = true

	c := m.composer
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		text, err := c.Suggest(ctx)
		return suggestionMsg{composer: c, text: text, err: err}
	})
}

func (m *composeModel) attach() {
	raw := m.inputs[fieldAttach].Value()
	files, err := mailshell.StatFiles(strings.Split(raw, ","))
	if err != nil {
		m.notice = fmt.Sprintf("File upload failed. Please try again. (%v)", err)
		return
	}
	if err := m.composer.AddFiles(files); err != nil {
		m.notice = m.composer.UploadError()
		return
	}
	m.notice = ""
	m.inputs[fieldAttach].SetValue("")
}

func (m *composeModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Compose Email") + "\n\n")

	row := func(label string, f composeField) {
		b.WriteString(fieldLabelStyle.Render(label) + m.inputs[f].View() + "\n")
	}
	row("To *", fieldTo)
	row("CC", fieldCc)
	row("BCC", fieldBcc)
	row("Subject *", fieldSubject)

	b.WriteString("\n" + fieldLabelStyle.Render("Message"))
	if m.suggesting {
		b.WriteString(m.spinner.View() + " Generating...")
	}
	b.WriteString("\n" + m.body.View() + "\n\n")

	atts := m.composer.Draft().Attachments
	b.WriteString(fieldLabelStyle.Render("Attach") + m.inputs[fieldAttach].View() + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Attachments (%d)", len(atts))) + "\n")
	for _, att := range atts {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", mailshell.FileIcon(att.Name), att.Name, mutedStyle.Render(mailshell.FormatFileSize(att.Size))))
	}

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.notice) + "\n")
	}
	return b.String()
}
