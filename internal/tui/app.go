package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weedbox/mailshell"
)

type focusState int

const (
	focusList focusState = iota
	focusSearch
	focusCompose
)

type statusMsg string

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// AppModel is the root bubbletea model of the mailbox shell.
type AppModel struct {
	manager  *mailshell.Manager
	composer mailshell.ComposerOptions
	keys     *KeyMap
	help     help.Model

	focus   focusState
	cursor  int
	search  textinput.Model
	compose *composeModel

	status  string
	isError bool

	now           func() time.Time
	width, height int
}

// NewAppModel creates the shell over a loaded manager.
func NewAppModel(manager *mailshell.Manager, composer mailshell.ComposerOptions) *AppModel {
	search := textinput.New()
	search.Placeholder = "Search emails..."
	search.Prompt = "/ "
	search.Width = 40

	if composer.OnSend == nil {
		composer.OnSend = manager.SendDraft
	}
	if composer.OnSave == nil {
		composer.OnSave = manager.SaveDraft
	}

	return &AppModel{
		manager:  manager,
		composer: composer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		search:   search,
		now:      time.Now,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, clearStatusAfter(3 * time.Second)

	case clearStatusMsg:
		m.status = ""
		m.isError = false
		return m, nil
	}

	switch m.focus {
	case focusCompose:
		return m.updateCompose(msg)
	case focusSearch:
		return m.updateSearch(msg)
	default:
		return m.updateList(msg)
	}
}

func (m *AppModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ctx := context.Background()
	visible := m.manager.Visible()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Open):
		if m.cursor < len(visible) {
			_, err := m.manager.Select(ctx, visible[m.cursor].ID)
			return m, m.reportErr(err)
		}

	case key.Matches(keyMsg, m.keys.Back):
		m.manager.SwitchView(m.manager.Snapshot().View)

	case key.Matches(keyMsg, m.keys.Inbox):
		m.switchView(mailshell.ViewInbox)
	case key.Matches(keyMsg, m.keys.Starred):
		m.switchView(mailshell.ViewStarred)
	case key.Matches(keyMsg, m.keys.Sent):
		m.switchView(mailshell.ViewSent)
	case key.Matches(keyMsg, m.keys.Trash):
		m.switchView(mailshell.ViewTrash)

	case key.Matches(keyMsg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()

	case key.Matches(keyMsg, m.keys.Compose):
		_, d := m.manager.Compose()
		return m, m.openComposer(d)

	case key.Matches(keyMsg, m.keys.Star):
		if id := m.targetID(visible); id != "" {
			_, err := m.manager.ToggleStar(ctx, id)
			return m, m.reportErr(err)
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if id := m.targetID(visible); id != "" {
			_, err := m.manager.Delete(ctx, id)
			m.clampCursor()
			return m, m.reportErr(err)
		}

	case key.Matches(keyMsg, m.keys.Reply):
		if sel, ok := m.manager.Snapshot().Selected(); ok {
			_, d := m.manager.Reply(sel.ID)
			return m, m.openComposer(d)
		}

	case key.Matches(keyMsg, m.keys.ReplyAll):
		if sel, ok := m.manager.Snapshot().Selected(); ok {
			_, d := m.manager.ReplyAll(sel.ID)
			return m, m.openComposer(d)
		}

	case key.Matches(keyMsg, m.keys.Forward):
		if sel, ok := m.manager.Snapshot().Selected(); ok {
			_, d := m.manager.Forward(sel.ID)
			return m, m.openComposer(d)
		}
	}

	return m, nil
}

func (m *AppModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.search.Blur()
			m.focus = focusList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.manager.SetQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *AppModel) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	result, cmd := m.compose.update(msg)

	switch result {
	case composeSent:
		// The send hook has already switched back to the inbox
		m.compose = nil
		m.focus = focusList
		m.cursor = 0
		m.isError = false
		return m, func() tea.Msg { return statusMsg("Email sent successfully!") }

	case composeSaved:
		m.isError = false
		return m, func() tea.Msg { return statusMsg("Draft saved!") }

	case composeDiscarded:
		m.compose = nil
		m.focus = focusList
		m.switchView(mailshell.ViewInbox)
		return m, nil
	}

	return m, cmd
}

func (m *AppModel) openComposer(d mailshell.Draft) tea.Cmd {
	if m.compose != nil {
		m.compose.close()
	}
	m.compose = newComposeModel(d, m.composer)
	m.focus = focusCompose
	return textinput.Blink
}

func (m *AppModel) switchView(v mailshell.View) {
	m.manager.SwitchView(v)
	m.cursor = 0
}

// targetID is the selected message, or the one under the cursor.
func (m *AppModel) targetID(visible []mailshell.Message) string {
	if sel, ok := m.manager.Snapshot().Selected(); ok {
		return sel.ID
	}
	if m.cursor < len(visible) {
		return visible[m.cursor].ID
	}
	return ""
}

func (m *AppModel) clampCursor() {
	n := len(m.manager.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *AppModel) reportErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.isError = true
	return func() tea.Msg { return statusMsg(fmt.Sprintf("Error: %v", err)) }
}

func (m *AppModel) View() string {
	state := m.manager.Snapshot()

	var main string
	if m.focus == focusCompose && m.compose != nil {
		main = viewerStyle.Render(m.compose.view())
	} else {
		visible := state.Visible()
		list := listStyle.Render(renderList(visible, m.cursor, state.SelectedID, m.now()))
		var viewer string
		if sel, ok := state.Selected(); ok {
			viewer = renderViewer(sel)
		} else {
			viewer = renderEmptyViewer()
		}
		main = lipgloss.JoinHorizontal(lipgloss.Top, list, viewerStyle.Render(viewer))
	}

	header := m.search.View() + "  " + mutedStyle.Render(fmt.Sprintf("%d emails", len(state.Visible())))
	body := lipgloss.JoinVertical(lipgloss.Left, header, "", main)
	screen := lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(renderSidebar(state)), body)

	footer := ""
	if m.status != "" {
		if m.isError {
			footer = errorStyle.Render(m.status)
		} else {
			footer = statusStyle.Render(m.status)
		}
	}
	var helpView string
	if m.focus == focusCompose && m.compose != nil {
		helpView = m.help.View(m.compose.keys)
	} else {
		helpView = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left, screen, footer, helpView)
}
