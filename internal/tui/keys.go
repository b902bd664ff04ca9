package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the mailbox screens.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Open key.Binding
	Back key.Binding
	Quit key.Binding

	// Views
	Inbox   key.Binding
	Starred key.Binding
	Sent    key.Binding
	Trash   key.Binding
	Compose key.Binding
	Search  key.Binding

	// Message actions
	Star     key.Binding
	Delete   key.Binding
	Reply    key.Binding
	ReplyAll key.Binding
	Forward  key.Binding

	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Inbox:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "inbox")),
		Starred:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "starred")),
		Sent:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sent")),
		Trash:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "trash")),
		Compose:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compose")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Star:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reply:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reply")),
		ReplyAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reply all")),
		Forward:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Compose, k.Search, k.Help, k.Quit}
}

// FullHelp returns all keybindings grouped by category.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back, k.Quit},
		{k.Inbox, k.Starred, k.Sent, k.Trash, k.Compose, k.Search},
		{k.Star, k.Delete, k.Reply, k.ReplyAll, k.Forward, k.Help},
	}
}

// ComposeKeyMap defines the keybindings of the composer.
type ComposeKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Send    key.Binding
	Save    key.Binding
	Suggest key.Binding
	Attach  key.Binding
	Detach  key.Binding
	Cancel  key.Binding
}

// DefaultComposeKeyMap returns the default composer keybindings.
func DefaultComposeKeyMap() *ComposeKeyMap {
	return &ComposeKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Send:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Save:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "save draft")),
		Suggest: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "AI suggest")),
		Attach:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "attach paths")),
		Detach:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove last attachment")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}

// ShortHelp returns the composer bindings for the help line.
func (k *ComposeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Send, k.Save, k.Suggest, k.Cancel}
}

// FullHelp returns all composer bindings.
func (k *ComposeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Cancel},
		{k.Send, k.Save, k.Suggest},
		{k.Attach, k.Detach},
	}
}
