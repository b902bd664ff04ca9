package mailshell

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every write
type failingStore struct {
	*MemoryMessageStore
}

var errWriteFailed = errors.New("write failed")

func (s failingStore) SaveMessage(ctx context.Context, msg Message) error {
	return errWriteFailed
}

func (s failingStore) DeleteMessage(ctx context.Context, messageID string) error {
	return errWriteFailed
}

func setupManager(t *testing.T, opts ...ManagerOption) (*Manager, *MemoryMessageStore) {
	store := NewMemoryMessageStore(SampleMessages()...)
	manager, err := NewManager(store, opts...)
	require.NoError(t, err)
	require.NoError(t, manager.Load(context.Background()))
	return manager, store
}

func TestNewManager(t *testing.T) {
	manager, err := NewManager(nil)
	assert.Error(t, err)
	assert.Nil(t, manager)

	manager, _ = setupManager(t)
	s := manager.Snapshot()
	assert.Len(t, s.Messages, 3)
	assert.Equal(t, ViewInbox, s.View)
	assert.Equal(t, DefaultSelfAddress, s.Self)
}

func TestManager_Select(t *testing.T) {
	manager, store := setupManager(t)
	ctx := context.Background()

	s, err := manager.Select(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", s.SelectedID)

	stored, err := store.GetMessage(ctx, "1")
	require.NoError(t, err)
	assert.True(t, stored.Read)

	// Unknown IDs are a no-op
	s, err = manager.Select(ctx, "missing")
	assert.NoError(t, err)
	assert.Equal(t, "1", s.SelectedID)
}

func TestManager_ToggleStar(t *testing.T) {
	manager, store := setupManager(t)
	ctx := context.Background()

	_, err := manager.Select(ctx, "2")
	require.NoError(t, err)

	s, err := manager.ToggleStar(ctx, "2")
	require.NoError(t, err)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.True(t, sel.Starred)
	assert.Equal(t, 2, CountStarred(s.Messages))

	stored, _ := store.GetMessage(ctx, "2")
	assert.True(t, stored.Starred)

	_, err = manager.ToggleStar(ctx, "missing")
	assert.NoError(t, err)
}

func TestManager_Delete(t *testing.T) {
	manager, store := setupManager(t)
	ctx := context.Background()

	_, err := manager.Select(ctx, "1")
	require.NoError(t, err)

	s, err := manager.Delete(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, s.SelectedID)
	assert.Equal(t, []string{"1", "3"}, ids(s.Messages))

	_, err = store.GetMessage(ctx, "2")
	assert.True(t, errors.Is(err, ErrMessageNotFound))

	// Deleting an unknown ID still clears the selection
	_, err = manager.Select(ctx, "3")
	require.NoError(t, err)
	s, err = manager.Delete(ctx, "missing")
	assert.NoError(t, err)
	assert.Empty(t, s.SelectedID)
}

func TestManager_StoreFailureKeepsState(t *testing.T) {
	store := failingStore{NewMemoryMessageStore(SampleMessages()...)}
	manager, err := NewManager(store)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, manager.Load(ctx))

	_, err = manager.Select(ctx, "1")
	assert.True(t, errors.Is(err, errWriteFailed))
	assert.False(t, manager.Snapshot().Messages[0].Read)

	// Already read messages need no write
	_, err = manager.Select(ctx, "2")
	assert.NoError(t, err)

	_, err = manager.ToggleStar(ctx, "3")
	assert.True(t, errors.Is(err, errWriteFailed))
	assert.False(t, manager.Snapshot().Messages[2].Starred)

	_, err = manager.Delete(ctx, "3")
	assert.True(t, errors.Is(err, errWriteFailed))
	assert.Len(t, manager.Snapshot().Messages, 3)
}

func TestManager_ViewAndQuery(t *testing.T) {
	manager, _ := setupManager(t, WithSelfAddress("billing@vendor.com"))

	manager.SetQuery("INVOICE")
	assert.Equal(t, []string{"3"}, ids(manager.Visible()))

	s := manager.SwitchView(ViewSent)
	assert.Equal(t, ViewSent, s.View)
	assert.Equal(t, []string{"3"}, ids(manager.Visible()))

	manager.SwitchView(ViewTrash)
	assert.Empty(t, manager.Visible())
}

func TestManager_Drafts(t *testing.T) {
	manager, _ := setupManager(t)
	ctx := context.Background()

	_, err := manager.Select(ctx, "3")
	require.NoError(t, err)

	s, d := manager.Reply("3")
	assert.Equal(t, ViewCompose, s.View)
	assert.Empty(t, s.SelectedID)
	assert.Equal(t, "billing@vendor.com", d.To)
	assert.Equal(t, "Re: Invoice #12345", d.Subject)

	s, d = manager.ReplyAll("3")
	assert.Equal(t, ViewCompose, s.View)
	assert.Equal(t, "billing@vendor.com", d.To)
	assert.Empty(t, d.Cc)

	s, d = manager.Forward("3")
	assert.Equal(t, ViewCompose, s.View)
	assert.Equal(t, "Fwd: Invoice #12345", d.Subject)
	assert.Len(t, d.Attachments, 1)

	s, d = manager.Compose()
	assert.Equal(t, ViewCompose, s.View)
	assert.Equal(t, Draft{}, d)

	// Unknown messages still open an empty composer
	s, d = manager.Reply("missing")
	assert.Equal(t, ViewCompose, s.View)
	assert.Equal(t, Draft{}, d)
}

func TestManager_Hooks(t *testing.T) {
	var buf bytes.Buffer
	manager, _ := setupManager(t, WithLogger(log.New(&buf, "", 0)))

	manager.Compose()
	manager.SaveDraft(Draft{To: "a@b.c", Subject: "draft"})
	assert.Equal(t, ViewCompose, manager.Snapshot().View)
	assert.Contains(t, buf.String(), `saving draft to="a@b.c" subject="draft"`)

	c := NewComposer(Draft{To: "a@b.c", Subject: "hi"}, ComposerOptions{
		OnSend: manager.SendDraft,
		OnSave: manager.SaveDraft,
	})
	require.NoError(t, c.Send())
	assert.Equal(t, ViewInbox, manager.Snapshot().View)
	assert.Contains(t, buf.String(), `sending email to="a@b.c" subject="hi" attachments=0`)
	assert.Contains(t, buf.String(), "loaded 3 messages")
}
