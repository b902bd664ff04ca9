package mailshell

import (
	"strings"
)

// ComputeVisible returns the messages shown for a view and search query.
// The text filter runs first, then the view filter; input order is preserved.
func ComputeVisible(msgs []Message, view View, query, self string) []Message {
	q := strings.ToLower(query)
	visible := []Message{}

	for _, msg := range msgs {
		if !matchQuery(msg, q) {
			continue
		}
		if !matchView(msg, view, self) {
			continue
		}
		visible = append(visible, msg.clone())
	}

	return visible
}

// matchQuery expects q already lowercased
func matchQuery(msg Message, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(msg.Subject), q) ||
		strings.Contains(strings.ToLower(msg.Sender), q) ||
		strings.Contains(strings.ToLower(msg.Body), q)
}

func matchView(msg Message, view View, self string) bool {
	switch view {
	case ViewInbox:
		return true
	case ViewStarred:
		return msg.Starred
	case ViewSent:
		return msg.Sender == self
	case ViewTrash:
		// No deletion store backs the trash view
		return false
	case ViewCompose:
		return false
	default:
		return false
	}
}

// SelectMessage marks the message read and returns it as the selection.
// An unknown ID leaves the collection unchanged and selects nothing.
func SelectMessage(msgs []Message, id string) ([]Message, string) {
	idx := indexOf(msgs, id)
	if idx < 0 {
		return msgs, ""
	}
	if msgs[idx].Read {
		return msgs, id
	}

	next := copyMessages(msgs)
	next[idx].Read = true
	return next, id
}

// ToggleStar flips the starred flag of the message with the given ID.
// When selected refers to the same message, the refreshed copy is returned in its place.
func ToggleStar(msgs []Message, selected *Message, id string) ([]Message, *Message) {
	idx := indexOf(msgs, id)
	if idx < 0 {
		return msgs, selected
	}

	next := copyMessages(msgs)
	next[idx].Starred = !next[idx].Starred

	if selected != nil && selected.ID == id {
		refreshed := next[idx].clone()
		return next, &refreshed
	}
	return next, selected
}

// DeleteMessage removes the message with the given ID
func DeleteMessage(msgs []Message, id string) []Message {
	idx := indexOf(msgs, id)
	if idx < 0 {
		return msgs
	}

	next := make([]Message, 0, len(msgs)-1)
	for i, msg := range msgs {
		if i == idx {
			continue
		}
		next = append(next, msg.clone())
	}
	return next
}

// CountUnread counts messages whose read flag is not set
func CountUnread(msgs []Message) int {
	count := 0
	for _, msg := range msgs {
		if !msg.Read {
			count++
		}
	}
	return count
}

// CountStarred counts starred messages
func CountStarred(msgs []Message) int {
	count := 0
	for _, msg := range msgs {
		if msg.Starred {
			count++
		}
	}
	return count
}

// FindMessage looks up a message by ID
func FindMessage(msgs []Message, id string) (Message, bool) {
	idx := indexOf(msgs, id)
	if idx < 0 {
		return Message{}, false
	}
	return msgs[idx].clone(), true
}

func indexOf(msgs []Message, id string) int {
	for i, msg := range msgs {
		if msg.ID == id {
			return i
		}
	}
	return -1
}

func copyMessages(msgs []Message) []Message {
	next := make([]Message, len(msgs))
	for i, msg := range msgs {
		next[i] = msg.clone()
	}
	return next
}

// Badge is a sidebar entry with its counter
type Badge struct {
	View  View
	Count int
}

// State is the whole mailbox UI state. Every method returns a new State and leaves the receiver untouched.
type State struct {
	Messages   []Message
	SelectedID string
	View       View
	Query      string
	Self       string
}

// NewState creates an inbox state over the given messages
func NewState(msgs []Message, self string) State {
	if self == "" {
		self = DefaultSelfAddress
	}
	return State{
		Messages: copyMessages(msgs),
		View:     ViewInbox,
		Self:     self,
	}
}

// Visible returns the list shown for the current view and query
func (s State) Visible() []Message {
	return ComputeVisible(s.Messages, s.View, s.Query, s.Self)
}

// Selected returns the selected message, if any
func (s State) Selected() (Message, bool) {
	if s.SelectedID == "" {
		return Message{}, false
	}
	return FindMessage(s.Messages, s.SelectedID)
}

// Select marks the message read and selects it
func (s State) Select(id string) State {
	msgs, selected := SelectMessage(s.Messages, id)
	if selected == "" {
		return s
	}
	s.Messages = msgs
	s.SelectedID = selected
	return s
}

// ToggleStar flips the starred flag of a message. The selection is kept by ID, so it always sees the new value.
func (s State) ToggleStar(id string) State {
	s.Messages, _ = ToggleStar(s.Messages, nil, id)
	return s
}

// Delete removes a message and clears the selection
func (s State) Delete(id string) State {
	s.Messages = DeleteMessage(s.Messages, id)
	s.SelectedID = ""
	return s
}

// SetQuery replaces the search query
func (s State) SetQuery(query string) State {
	s.Query = query
	return s
}

// SwitchView changes the active view and clears the selection
func (s State) SwitchView(view View) State {
	s.View = view
	s.SelectedID = ""
	return s
}

// Compose switches to the compose view
func (s State) Compose() State {
	return s.SwitchView(ViewCompose)
}

// Reply switches to compose with no message selected
func (s State) Reply(id string) State {
	return s.Compose()
}

// ReplyAll switches to compose with no message selected
func (s State) ReplyAll(id string) State {
	return s.Compose()
}

// Forward switches to compose with no message selected
func (s State) Forward(id string) State {
	return s.Compose()
}

// Badges returns the sidebar counters in sidebar order
func (s State) Badges() []Badge {
	badges := make([]Badge, 0, len(SidebarViews))
	for _, v := range SidebarViews {
		b := Badge{View: v}
		switch v {
		case ViewInbox:
			b.Count = CountUnread(s.Messages)
		case ViewStarred:
			b.Count = CountStarred(s.Messages)
		}
		badges = append(badges, b)
	}
	return badges
}

// ReplyDraft prefills a reply to the message
func ReplyDraft(msg Message) Draft {
	return Draft{
		To:      msg.Sender,
		Subject: prefixSubject("Re: ", msg.Subject),
		Body:    quoteBody(msg),
	}
}

// ReplyAllDraft prefills a reply to the sender, copying the other recipient
func ReplyAllDraft(msg Message, self string) Draft {
	d := ReplyDraft(msg)
	if msg.Recipient != "" && msg.Recipient != self && msg.Recipient != msg.Sender {
		d.Cc = msg.Recipient
	}
	return d
}

// ForwardDraft prefills a forward of the message including its attachments
func ForwardDraft(msg Message) Draft {
	d := Draft{
		Subject: prefixSubject("Fwd: ", msg.Subject),
		Body:    "\n\n---------- Forwarded message ----------\nFrom: " + msg.Sender + "\nSubject: " + msg.Subject + "\n\n" + msg.Body,
	}
	if len(msg.Attachments) > 0 {
		d.Attachments = make([]Attachment, len(msg.Attachments))
		copy(d.Attachments, msg.Attachments)
	}
	return d
}

func prefixSubject(prefix, subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), strings.ToLower(prefix)) {
		return subject
	}
	return prefix + subject
}

func quoteBody(msg Message) string {
	lines := strings.Split(msg.Body, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return "\n\n" + msg.Sender + " wrote:\n" + strings.Join(lines, "\n")
}
