// Package chat models the global community message feed.
package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
)

// MaxContentLength bounds a single message.
const MaxContentLength = 1000

// Message is an append-only chat entry. Sender fields are copied from the
// user at write time.
type Message struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SenderName  string
	SenderEmail string
	Content     string
	CreatedAt   time.Time
}

// NewMessage validates content and stamps the sender snapshot.
func NewMessage(userID uuid.UUID, senderName, senderEmail, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrValidation, MaxContentLength)
	}
	return &Message{
		ID:          uuid.New(),
		UserID:      userID,
		SenderName:  senderName,
		SenderEmail: senderEmail,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
