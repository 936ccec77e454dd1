package chat_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/amirasaad/fintrack/internal/testutils"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	chatsvc "github.com/amirasaad/fintrack/pkg/service/chat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostAndList(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := chatsvc.New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	u, err := user.New("gina@example.com", "password", "Gina")
	require.NoError(t, err)
	require.NoError(t, uow.UserRepository().Create(ctx, u))

	for i := 0; i < 3; i++ {
		_, err := svc.Post(ctx, u.ID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	msgs, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Gina", msgs[0].SenderName)
	assert.Equal(t, "gina@example.com", msgs[0].SenderEmail)
	assert.False(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt), "newest first")

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	u.Name = "Gina R."
	require.NoError(t, uow.UserRepository().Update(ctx, u))
	all, err = svc.List(ctx, 500)
	require.NoError(t, err)
	for _, m := range all {
		assert.Equal(t, "Gina", m.SenderName, "sender name is a snapshot")
	}
}

func TestPost_Validation(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := chatsvc.New(uow, testutils.DiscardLogger())
	ctx := context.Background()

	u, err := user.New("hank@example.com", "password", "")
	require.NoError(t, err)
	require.NoError(t, uow.UserRepository().Create(ctx, u))

	_, err = svc.Post(ctx, u.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Post(ctx, u.ID, strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Post(ctx, uuid.New(), "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
