package mailshell

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultSuggestionDelay is how long a reply suggestion takes to arrive
	DefaultSuggestionDelay = 2 * time.Second
	// MissingFieldsMessage is shown when Send is refused
	MissingFieldsMessage = "Please fill in the recipient and subject fields."
)

var (
	ErrMissingRequiredFields = errors.New("recipient and subject are required")
	ErrComposerClosed        = errors.New("composer closed")
)

// Suggestions are the canned replies offered by Suggest
var Suggestions = []string{
	"Thank you for your email. I'll review the attached documents and get back to you within 24 hours.",
	"I appreciate you reaching out. Based on your message, I'd like to schedule a call to discuss this further.",
	"Thanks for the information. I've reviewed your request and will provide a detailed response shortly.",
}

// ComposerOptions configures a Composer
type ComposerOptions struct {
	OnSend          func(Draft)
	OnSave          func(Draft)
	MaxFiles        int
	MaxSize         int64
	SuggestionDelay time.Duration
	Pick            func(n int) int // Chooses a suggestion index in [0, n)
}

// Composer holds a draft under edit and hands it to the send and save hooks
type Composer struct {
	mu        sync.Mutex
	draft     Draft
	uploadErr string
	opts      ComposerOptions
	closed    chan struct{}
	closeOnce sync.Once
}

// NewComposer starts composing from an initial draft
func NewComposer(initial Draft, opts ComposerOptions) *Composer {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.SuggestionDelay < 0 {
		opts.SuggestionDelay = 0
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}
	if initial.Attachments == nil {
		initial.Attachments = []Attachment{}
	}

	return &Composer{
		draft:  initial.clone(),
		opts:   opts,
		closed: make(chan struct{}),
	}
}

// Draft returns a copy of the current draft
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

// Update applies fn to the draft
func (c *Composer) Update(fn func(d *Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
}

// Send validates the draft and fires the send hook once
func (c *Composer) Send() error {
	d := c.Draft()
	if strings.TrimSpace(d.To) == "" || strings.TrimSpace(d.Subject) == "" {
		return ErrMissingRequiredFields
	}

	if c.opts.OnSend != nil {
		c.opts.OnSend(d)
	}
	return nil
}

// Save fires the save hook with the draft as is
func (c *Composer) Save() {
	if c.opts.OnSave != nil {
		c.opts.OnSave(c.Draft())
	}
}

// AddFiles attaches a batch of files. A rejected batch leaves the draft untouched and sets UploadError.
func (c *Composer) AddFiles(files []IncomingFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.uploadErr = ""
	accepted, err := ValidateIncoming(c.draft.Attachments, files, c.opts.MaxFiles, c.opts.MaxSize)
	if err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			c.uploadErr = rej.Message
		} else {
			c.uploadErr = "File upload failed. Please try again."
		}
		return err
	}

	c.draft.Attachments = accepted
	return nil
}

// RemoveAttachment drops an attachment from the draft
func (c *Composer) RemoveAttachment(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Attachments = RemoveAttachment(c.draft.Attachments, id)
}

// UploadError returns the message of the last rejected batch, or ""
func (c *Composer) UploadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploadErr
}

// Suggest waits out the suggestion delay and returns a reply text.
// It returns early when ctx is done or the composer is closed.
func (c *Composer) Suggest(ctx context.Context) (string, error) {
	timer := time.NewTimer(c.opts.SuggestionDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return Suggestions[c.opts.Pick(len(Suggestions))], nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.closed:
		return "", ErrComposerClosed
	}
}

// ApplySuggestion replaces the body with a suggestion. It is a no-op once the composer is closed.
func (c *Composer) ApplySuggestion(text string) bool {
	if c.Closed() {
		return false
	}
	c.Update(func(d *Draft) {
		d.Body = text
	})
	return true
}

// Close discards the composer and cancels a pending suggestion
func (c *Composer) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// Closed reports whether Close has been called
func (c *Composer) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
