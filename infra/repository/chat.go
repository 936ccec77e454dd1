package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/domain/chat"
	"github.com/amirasaad/fintrack/pkg/repository"
	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a chat feed repository on db.
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *chat.Message) error {
	m := ChatMessage{
		ID:          msg.ID,
		UserID:      msg.UserID,
		SenderName:  msg.SenderName,
		SenderEmail: msg.SenderEmail,
		Content:     msg.Content,
		CreatedAt:   msg.CreatedAt,
	}
	return insert(r.db.WithContext(ctx), &m)
}

func (r *chatRepository) List(ctx context.Context, limit int) ([]*chat.Message, error) {
	var rows []ChatMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainErr(err)
	}
	out := make([]*chat.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, &chat.Message{
			ID:          m.ID,
			UserID:      m.UserID,
			SenderName:  m.SenderName,
			SenderEmail: m.SenderEmail,
			Content:     m.Content,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
