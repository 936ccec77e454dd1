package chat

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/chat"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	chatsvc "github.com/amirasaad/fintrack/pkg/service/chat"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMessageDTO(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		SenderName:  m.SenderName,
		SenderEmail: m.SenderEmail,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}

func Routes(app *fiber.App, svc *chatsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/chat", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/messages", ListMessages(svc))
	g.Post("/messages", PostMessage(svc, authSvc))
}

// ListMessages returns the newest messages first.
// @Summary Chat feed
// @Tags chat
// @Produce json
// @Param limit query int false "Number of messages (default 50, max 200)"
// @Success 200 {array} MessageDTO
// @Failure 401 {object} common.ErrorResponse
// @Router /chat/messages [get]
// @Security BearerAuth
func ListMessages(svc *chatsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msgs, err := svc.List(c.UserContext(), c.QueryInt("limit", chatsvc.DefaultLimit))
		if err != nil {
			return common.HandleError(c, err)
		}
		out := make([]MessageDTO, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessageDTO(m))
		}
		return c.JSON(out)
	}
}

// PostMessage appends a message signed with the caller's current name.
// @Summary Post chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body PostMessageRequest true "Message"
// @Success 201 {object} MessageDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /chat/messages [post]
// @Security BearerAuth
func PostMessage(svc *chatsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		input, err := common.BindAndValidate[PostMessageRequest](c)
		if input == nil {
			return err
		}
		msg, err := svc.Post(c.UserContext(), userID, input.Content)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toMessageDTO(msg))
	}
}
