package mailshell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_Send(t *testing.T) {
	var sent []Draft
	c := NewComposer(Draft{}, ComposerOptions{
		OnSend: func(d Draft) { sent = append(sent, d) },
	})

	// Missing fields block the hook
	err := c.Send()
	assert.True(t, errors.Is(err, ErrMissingRequiredFields))
	assert.Empty(t, sent)

	c.Update(func(d *Draft) {
		d.To = "   "
		d.Subject = "Hello"
	})
	assert.True(t, errors.Is(c.Send(), ErrMissingRequiredFields))
	assert.Empty(t, sent)

	c.Update(func(d *Draft) {
		d.To = "sarah.wilson@company.com"
		d.Subject = "   "
	})
	assert.True(t, errors.Is(c.Send(), ErrMissingRequiredFields))
	assert.Empty(t, sent)

	c.Update(func(d *Draft) { d.Subject = "Hello" })
	require.NoError(t, c.Send())
	require.Len(t, sent, 1)
	assert.Equal(t, "sarah.wilson@company.com", sent[0].To)
	assert.Equal(t, "Hello", sent[0].Subject)
}

func TestComposer_Save(t *testing.T) {
	var saved []Draft
	initial := Draft{To: " ", Body: "half written"}
	c := NewComposer(initial, ComposerOptions{
		OnSave: func(d Draft) { saved = append(saved, d) },
	})

	c.Save()
	require.Len(t, saved, 1)
	assert.Equal(t, " ", saved[0].To)
	assert.Equal(t, "half written", saved[0].Body)
	assert.Empty(t, saved[0].Attachments)
}

func TestComposer_Attachments(t *testing.T) {
	c := NewComposer(Draft{}, ComposerOptions{MaxFiles: 2, MaxSize: 100})

	require.NoError(t, c.AddFiles([]IncomingFile{{Name: "a.txt", Size: 10}}))
	assert.Empty(t, c.UploadError())
	assert.Len(t, c.Draft().Attachments, 1)

	// Oversized batch is rejected as a whole
	err := c.AddFiles([]IncomingFile{{Name: "b.txt", Size: 10}, {Name: "c.bin", Size: 101}})
	assert.True(t, errors.Is(err, ErrFileTooLarge))
	assert.Equal(t, "File is too large. Maximum size is 100 B.", c.UploadError())
	assert.Len(t, c.Draft().Attachments, 1)

	err = c.AddFiles([]IncomingFile{{Name: "b.txt", Size: 10}, {Name: "c.txt", Size: 10}})
	assert.True(t, errors.Is(err, ErrTooManyFiles))
	assert.Equal(t, "Cannot upload more than 2 files.", c.UploadError())

	// A later success clears the error
	require.NoError(t, c.AddFiles([]IncomingFile{{Name: "b.txt", Size: 10}}))
	assert.Empty(t, c.UploadError())

	atts := c.Draft().Attachments
	require.Len(t, atts, 2)
	c.RemoveAttachment(atts[0].ID)
	assert.Equal(t, []Attachment{atts[1]}, c.Draft().Attachments)
}

func TestComposer_DraftIsCopied(t *testing.T) {
	initial := Draft{Attachments: []Attachment{{ID: "x"}}}
	c := NewComposer(initial, ComposerOptions{})

	initial.Attachments[0].ID = "changed"
	d := c.Draft()
	assert.Equal(t, "x", d.Attachments[0].ID)

	d.Attachments[0].ID = "changed again"
	assert.Equal(t, "x", c.Draft().Attachments[0].ID)
}

func TestComposer_Suggest(t *testing.T) {
	c := NewComposer(Draft{}, ComposerOptions{
		SuggestionDelay: time.Millisecond,
		Pick:            func(n int) int { return n - 1 },
	})

	text, err := c.Suggest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Suggestions[len(Suggestions)-1], text)

	assert.True(t, c.ApplySuggestion(text))
	assert.Equal(t, text, c.Draft().Body)
}

func TestComposer_SuggestCancelledByContext(t *testing.T) {
	c := NewComposer(Draft{}, ComposerOptions{SuggestionDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Suggest(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestComposer_CloseDropsPendingSuggestion(t *testing.T) {
	c := NewComposer(Draft{Body: "original"}, ComposerOptions{SuggestionDelay: time.Hour})

	done := make(chan error, 1)
	go func() {
		_, err := c.Suggest(context.Background())
		done <- err
	}()

	c.Close()
	c.Close()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, ErrComposerClosed))
	case <-time.After(5 * time.Second):
		t.Fatal("suggestion was not cancelled")
	}

	assert.True(t, c.Closed())
	assert.False(t, c.ApplySuggestion("late"))
	assert.Equal(t, "original", c.Draft().Body)
}
