package mailshell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GormMessageStore implements the MessageStore interface using GORM as the storage medium
type GormMessageStore struct {
	db *gorm.DB
}

// MessageEntity is the database model for Message objects
type MessageEntity struct {
	ID          string `gorm:"primaryKey"`
	Seq         int64  `gorm:"index"` // Arrival order
	Subject     string
	Sender      string    `gorm:"index"`
	Recipient   string    `gorm:"index"`
	Body        string    `gorm:"type:text"`
	Attachments string    `gorm:"type:text"` // JSON serialized attachments
	Timestamp   time.Time `gorm:"index"`
	Read        bool      `gorm:"index"`
	Starred     bool      `gorm:"index"`
	Labels      string    `gorm:"type:text"` // JSON serialized labels
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the MessageEntity
func (MessageEntity) TableName() string {
	return "messages"
}

// NewGormMessageStore creates a new GORM-based message store
func NewGormMessageStore(db *gorm.DB) (*GormMessageStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	// Auto migrate the schema
	if err := db.AutoMigrate(&MessageEntity{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return &GormMessageStore{
		db: db,
	}, nil
}

// Seed inserts the given messages when the table is empty
func (s *GormMessageStore) Seed(ctx context.Context, msgs []Message) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&MessageEntity{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, msg := range msgs {
			entity, err := messageToEntity(msg)
			if err != nil {
				return fmt.Errorf("failed to convert message to entity: %w", err)
			}
			entity.Seq = int64(i + 1)
			if err := tx.Create(entity).Error; err != nil {
				return fmt.Errorf("failed to seed message %s: %w", msg.ID, err)
			}
		}
		return nil
	})
}

// ListMessages returns all messages in arrival order
func (s *GormMessageStore) ListMessages(ctx context.Context) ([]Message, error) {
	var entities []MessageEntity
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs := make([]Message, 0, len(entities))
	for i := range entities {
		msg, err := entityToMessage(&entities[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert entity to message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// GetMessage retrieves a message by ID
func (s *GormMessageStore) GetMessage(ctx context.Context, messageID string) (Message, error) {
	if messageID == "" {
		return Message{}, errors.New("message ID cannot be empty")
	}

	var entity MessageEntity
	result := s.db.WithContext(ctx).First(&entity, "id = ?", messageID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Message{}, fmt.Errorf("message %s: %w", messageID, ErrMessageNotFound)
		}
		return Message{}, fmt.Errorf("failed to get message: %w", result.Error)
	}

	return entityToMessage(&entity)
}

// SaveMessage inserts a message at the end of the collection or updates it in place
func (s *GormMessageStore) SaveMessage(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		return errors.New("message must have an ID")
	}

	entity, err := messageToEntity(msg)
	if err != nil {
		return fmt.Errorf("failed to convert message to entity: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing MessageEntity
		result := tx.Select("id", "seq", "created_at").First(&existing, "id = ?", msg.ID)
		switch {
		case result.Error == nil:
			// Keep the arrival position of the stored message
			entity.Seq = existing.Seq
			entity.CreatedAt = existing.CreatedAt
			if err := tx.Save(entity).Error; err != nil {
				return fmt.Errorf("failed to update message: %w", err)
			}
			return nil
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("failed to check message existence: %w", result.Error)
		}

		var maxSeq int64
		if err := tx.Model(&MessageEntity{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return fmt.Errorf("failed to read arrival order: %w", err)
		}
		entity.Seq = maxSeq + 1

		if err := tx.Create(entity).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		return nil
	})
}

// DeleteMessage deletes a message by ID
func (s *GormMessageStore) DeleteMessage(ctx context.Context, messageID string) error {
	if messageID == "" {
		return errors.New("message ID cannot be empty")
	}

	result := s.db.WithContext(ctx).Delete(&MessageEntity{}, "id = ?", messageID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("message %s: %w", messageID, ErrMessageNotFound)
	}
	return nil
}

// Helper function: Convert Message to MessageEntity
func messageToEntity(msg Message) (*MessageEntity, error) {
	entity := &MessageEntity{
		ID:        msg.ID,
		Subject:   msg.Subject,
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Body:      msg.Body,
		Timestamp: msg.Timestamp,
		Read:      msg.Read,
		Starred:   msg.Starred,
	}

	attachments := msg.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attachments: %w", err)
	}
	entity.Attachments = string(attachmentsJSON)

	labels := msg.Labels
	if labels == nil {
		labels = []string{}
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal labels: %w", err)
	}
	entity.Labels = string(labelsJSON)

	return entity, nil
}

// Helper function: Convert MessageEntity to Message
func entityToMessage(entity *MessageEntity) (Message, error) {
	msg := Message{
		ID:        entity.ID,
		Subject:   entity.Subject,
		Sender:    entity.Sender,
		Recipient: entity.Recipient,
		Body:      entity.Body,
		Timestamp: entity.Timestamp,
		Read:      entity.Read,
		Starred:   entity.Starred,
	}

	if entity.Attachments != "" {
		if err := json.Unmarshal([]byte(entity.Attachments), &msg.Attachments); err != nil {
			return Message{}, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}

	if entity.Labels != "" {
		if err := json.Unmarshal([]byte(entity.Labels), &msg.Labels); err != nil {
			return Message{}, fmt.Errorf("failed to unmarshal labels: %w", err)
		}
	}

	return msg, nil
}
