package chat_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type messageBody struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Content     string `json:"content"`
}

type ChatTestSuite struct {
	testutils.E2ETestSuite
	user testutils.TestUser
}

func (s *ChatTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.Register("ivan")
}

func (s *ChatTestSuite) TestPostAndList() {
	var msg messageBody
	s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/chat/messages", `{"content":"hello"}`, s.user.Token, &msg))
	s.Equal("ivan", msg.SenderName)
	s.Equal(s.user.Email, msg.SenderEmail)

	other := s.Register("judy")
	s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/chat/messages", `{"content":"hi ivan"}`, other.Token, nil))

	var feed []messageBody
	s.Require().Equal(fiber.StatusOK, s.Do(http.MethodGet, "/chat/messages", "", s.user.Token, &feed))
	s.Require().Len(feed, 2)
	s.Equal("hi ivan", feed[0].Content)
	s.Equal("hello", feed[1].Content)
}

func (s *ChatTestSuite) TestSenderSnapshotSurvivesRename() {
	s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/chat/messages", `{"content":"before"}`, s.user.Token, nil))
	s.Require().Equal(fiber.StatusOK, s.Do(http.MethodPut, "/users/me", `{"name":"Ivan the Great"}`, s.user.Token, nil))
	s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/chat/messages", `{"content":"after"}`, s.user.Token, nil))

	var feed []messageBody
	s.Require().Equal(fiber.StatusOK, s.Do(http.MethodGet, "/chat/messages", "", s.user.Token, &feed))
	s.Require().Len(feed, 2)
	s.Equal("Ivan the Great", feed[0].SenderName)
	s.Equal("ivan", feed[1].SenderName)
}

func (s *ChatTestSuite) TestLimit() {
	for i := range 5 {
		body := fmt.Sprintf(`{"content":"message %d"}`, i)
		s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/chat/messages", body, s.user.Token, nil))
	}
	var feed []messageBody
	s.Require().Equal(fiber.StatusOK, s.Do(http.MethodGet, "/chat/messages?limit=2", "", s.user.Token, &feed))
	s.Len(feed, 2)
}

func (s *ChatTestSuite) TestContentBounds() {
	status, _ := s.ErrorOf(http.MethodPost, "/chat/messages", `{"content":""}`, s.user.Token)
	s.Equal(fiber.StatusBadRequest, status)

	long := fmt.Sprintf(`{"content":%q}`, strings.Repeat("a", 1001))
	status, _ = s.ErrorOf(http.MethodPost, "/chat/messages", long, s.user.Token)
	s.Equal(fiber.StatusBadRequest, status)
}

func TestChatTestSuite(t *testing.T) {
	suite.Run(t, new(ChatTestSuite))
}
