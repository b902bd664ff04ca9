package mailshell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory database")

	// Every pooled connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

// setupGormMessageStore creates a seeded GormMessageStore with an in-memory database
func setupGormMessageStore(t *testing.T) *GormMessageStore {
	db := setupTestDB(t)
	store, err := NewGormMessageStore(db)
	require.NoError(t, err, "Failed to create GormMessageStore")
	require.NoError(t, store.Seed(context.Background(), SampleMessages()))
	return store
}

func TestNewGormMessageStore(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormMessageStore(db)
	assert.NoError(t, err)
	assert.NotNil(t, store)

	store, err = NewGormMessageStore(nil)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestGormMessageStore_Seed(t *testing.T) {
	store := setupGormMessageStore(t)
	ctx := context.Background()

	// Seeding a populated table is a no-op
	require.NoError(t, store.Seed(ctx, []Message{{ID: "99"}}))

	msgs, err := store.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(msgs))
}

func TestGormMessageStore_RoundTrip(t *testing.T) {
	store := setupGormMessageStore(t)
	ctx := context.Background()
	want := SampleMessages()[0]

	got, err := store.GetMessage(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want.Subject, got.Subject)
	assert.Equal(t, want.Sender, got.Sender)
	assert.Equal(t, want.Recipient, got.Recipient)
	assert.Equal(t, want.Body, got.Body)
	assert.Equal(t, want.Attachments, got.Attachments)
	assert.Equal(t, want.Labels, got.Labels)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, want.Read, got.Read)
	assert.Equal(t, want.Starred, got.Starred)

	_, err = store.GetMessage(ctx, "missing")
	assert.True(t, errors.Is(err, ErrMessageNotFound))

	_, err = store.GetMessage(ctx, "")
	assert.Error(t, err)
}

func TestGormMessageStore_SaveMessage(t *testing.T) {
	store := setupGormMessageStore(t)
	ctx := context.Background()

	// Updating keeps the arrival position and writes false values
	msg, err := store.GetMessage(ctx, "1")
	require.NoError(t, err)
	msg.Read = true
	msg.Starred = false
	require.NoError(t, store.SaveMessage(ctx, msg))

	require.NoError(t, store.SaveMessage(ctx, Message{ID: "4", Subject: "New"}))

	msgs, err := store.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(msgs))
	assert.True(t, msgs[0].Read)
	assert.False(t, msgs[0].Starred)
	assert.Empty(t, msgs[3].Attachments)
	assert.Empty(t, msgs[3].Labels)

	assert.Error(t, store.SaveMessage(ctx, Message{}))
}

func TestGormMessageStore_DeleteMessage(t *testing.T) {
	store := setupGormMessageStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteMessage(ctx, "2"))
	msgs, err := store.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(msgs))

	err = store.DeleteMessage(ctx, "2")
	assert.True(t, errors.Is(err, ErrMessageNotFound))

	// New messages still land after the remaining ones
	require.NoError(t, store.SaveMessage(ctx, Message{ID: "5"}))
	msgs, _ = store.ListMessages(ctx)
	assert.Equal(t, []string{"1", "3", "5"}, ids(msgs))
}

func TestGormMessageStore_BacksManager(t *testing.T) {
	store := setupGormMessageStore(t)
	ctx := context.Background()

	manager, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, manager.Load(ctx))

	_, err = manager.Select(ctx, "1")
	require.NoError(t, err)
	_, err = manager.ToggleStar(ctx, "2")
	require.NoError(t, err)
	_, err = manager.Delete(ctx, "3")
	require.NoError(t, err)

	// A fresh manager over the same store sees the changes
	reloaded, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(ctx))

	msgs := reloaded.Snapshot().Messages
	assert.Equal(t, []string{"1", "2"}, ids(msgs))
	assert.True(t, msgs[0].Read)
	assert.True(t, msgs[1].Starred)
}
