package mailshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

// Manager owns the mailbox state of one session and mirrors message changes to its store
type Manager struct {
	store  MessageStore // Storage backend
	logger *log.Logger
	state  State
	mu     sync.Mutex // Serializes user actions
}

// ManagerOption customizes a Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger used for mailbox events
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSelfAddress sets the address the sent view matches
func WithSelfAddress(self string) ManagerOption {
	return func(m *Manager) {
		if self != "" {
			m.state.Self = self
		}
	}
}

// NewManager creates a manager over the given store. Call Load before use.
func NewManager(store MessageStore, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}

	m := &Manager{
		store:  store,
		logger: log.New(io.Discard, "", 0),
		state:  NewState(nil, DefaultSelfAddress),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Load replaces the collection with the store contents and resets the view
func (m *Manager) Load(ctx context.Context) error {
	msgs, err := m.store.ListMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = NewState(msgs, m.state.Self)
	m.logger.Printf("loaded %d messages", len(msgs))
	return nil
}

// Snapshot returns the current state
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Visible returns the list for the current view and query
func (m *Manager) Visible() []Message {
	return m.Snapshot().Visible()
}

// Select selects a message and marks it read
func (m *Manager) Select(ctx context.Context, messageID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, found := FindMessage(m.state.Messages, messageID)
	if !found {
		return m.state, nil
	}

	next := m.state.Select(messageID)
	if !prev.Read {
		if err := m.persist(ctx, next, messageID); err != nil {
			return m.state, err
		}
		m.logger.Printf("message %s marked read", messageID)
	}

	m.state = next
	return m.state, nil
}

// ToggleStar flips the starred flag of a message
func (m *Manager) ToggleStar(ctx context.Context, messageID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := FindMessage(m.state.Messages, messageID); !found {
		return m.state, nil
	}

	next := m.state.ToggleStar(messageID)
	if err := m.persist(ctx, next, messageID); err != nil {
		return m.state, err
	}

	m.state = next
	m.logger.Printf("message %s star toggled", messageID)
	return m.state, nil
}

// Delete removes a message and clears the selection
func (m *Manager) Delete(ctx context.Context, messageID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := FindMessage(m.state.Messages, messageID); found {
		if err := m.store.DeleteMessage(ctx, messageID); err != nil && !errors.Is(err, ErrMessageNotFound) {
			return m.state, fmt.Errorf("failed to delete message %s: %w", messageID, err)
		}
		m.logger.Printf("message %s deleted", messageID)
	}

	m.state = m.state.Delete(messageID)
	return m.state, nil
}

// SetQuery replaces the search query
func (m *Manager) SetQuery(query string) State {
	return m.apply(func(s State) State { return s.SetQuery(query) })
}

// SwitchView changes the active view and clears the selection
func (m *Manager) SwitchView(view View) State {
	return m.apply(func(s State) State { return s.SwitchView(view) })
}

// Compose opens an empty draft
func (m *Manager) Compose() (State, Draft) {
	return m.apply(func(s State) State { return s.Compose() }), Draft{}
}

// Reply opens a draft answering the message
func (m *Manager) Reply(messageID string) (State, Draft) {
	return m.openDraft(messageID, ReplyDraft, State.Reply)
}

// ReplyAll opens a draft answering the sender and the other recipients
func (m *Manager) ReplyAll(messageID string) (State, Draft) {
	self := m.Snapshot().Self
	return m.openDraft(messageID, func(msg Message) Draft { return ReplyAllDraft(msg, self) }, State.ReplyAll)
}

// Forward opens a draft forwarding the message
func (m *Manager) Forward(messageID string) (State, Draft) {
	return m.openDraft(messageID, ForwardDraft, State.Forward)
}

// SendDraft is the default send hook: the draft is logged and the view returns to the inbox
func (m *Manager) SendDraft(d Draft) {
	m.logger.Printf("sending email to=%q subject=%q attachments=%d", d.To, d.Subject, len(d.Attachments))
	m.SwitchView(ViewInbox)
}

// SaveDraft is the default save hook: the draft is logged
func (m *Manager) SaveDraft(d Draft) {
	m.logger.Printf("saving draft to=%q subject=%q attachments=%d", d.To, d.Subject, len(d.Attachments))
}

func (m *Manager) apply(fn func(State) State) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = fn(m.state)
	return m.state
}

func (m *Manager) openDraft(messageID string, draftFn func(Message) Draft, transition func(State, string) State) (State, Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var d Draft
	if msg, found := FindMessage(m.state.Messages, messageID); found {
		d = draftFn(msg)
	}
	m.state = transition(m.state, messageID)
	return m.state, d
}

// persist writes the message with the given ID from next to the store
func (m *Manager) persist(ctx context.Context, next State, messageID string) error {
	msg, found := FindMessage(next.Messages, messageID)
	if !found {
		return nil
	}
	if err := m.store.SaveMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to save message %s: %w", messageID, err)
	}
	return nil
}
