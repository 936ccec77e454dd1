package transaction_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type txBody struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
}

type TransactionTestSuite struct {
	testutils.E2ETestSuite
	user testutils.TestUser
}

func (s *TransactionTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.Register("frank")
}

func (s *TransactionTestSuite) create(body string) txBody {
	var t txBody
	s.Require().Equal(fiber.StatusCreated, s.Do(http.MethodPost, "/transactions", body, s.user.Token, &t))
	return t
}

func (s *TransactionTestSuite) TestListNewestDateFirst() {
	s.create(`{"amount":-12.5,"description":"Lunch","type":"expense","category":"food","date":"2025-03-01"}`)
	s.create(`{"amount":3000,"description":"Salary","type":"income","date":"2025-03-28"}`)
	s.create(`{"amount":-40,"description":"Fuel","type":"expense","date":"2025-03-10T18:00:00Z"}`)

	var list []txBody
	s.Require().Equal(fiber.StatusOK, s.Do(http.MethodGet, "/transactions", "", s.user.Token, &list))
	s.Require().Len(list, 3)
	s.Equal([]string{"2025-03-28", "2025-03-10", "2025-03-01"}, []string{list[0].Date, list[1].Date, list[2].Date})
	s.Equal(-12.5, list[2].Amount)
}

func (s *TransactionTestSuite) TestUpdateAndDelete() {
	t := s.create(`{"amount":-9.99,"description":"Movie","type":"expense","date":"2025-04-02"}`)

	var updated txBody
	status := s.Do(http.MethodPut, "/transactions/"+t.ID, `{"description":"Cinema","date":"2025-04-03"}`, s.user.Token, &updated)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("Cinema", updated.Description)
	s.Equal("2025-04-03", updated.Date)
	s.Equal(-9.99, updated.Amount)

	resp := s.MakeRequest(http.MethodDelete, "/transactions/"+t.ID, "", s.user.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func (s *TransactionTestSuite) TestCreate_Invalid() {
	testCases := []struct {
		desc string
		body string
	}{
		{"missing amount", `{"description":"x","type":"income","date":"2025-01-01"}`},
		{"zero amount", `{"amount":0,"description":"x","type":"income","date":"2025-01-01"}`},
		{"bad type", `{"amount":1,"description":"x","type":"gift","date":"2025-01-01"}`},
		{"bad date", `{"amount":1,"description":"x","type":"income","date":"01/01/2025"}`},
		{"missing description", `{"amount":1,"type":"income","date":"2025-01-01"}`},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			status, _ := s.ErrorOf(http.MethodPost, "/transactions", tc.body, s.user.Token)
			s.Equal(fiber.StatusBadRequest, status)
		})
	}
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
