package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/advisor"
	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/service"
	"github.com/gertonargent/gta-backend/internal/testutil"
)

func newAdvisorHandlerFixture() (*AdvisorHandler, *testutil.MockBudgetRepository) {
	budgets := testutil.NewMockBudgetRepository()
	goals := testutil.NewMockGoalRepository()
	events := testutil.NewMockEventPublisher()
	transactionService := service.NewTransactionService(testutil.NewMockTransactionRepository(), budgets, events)
	advisorService := service.NewAdvisorService(budgets, goals, transactionService, events)
	return NewAdvisorHandler(advisorService), budgets
}

func TestAnalyze_Success(t *testing.T) {
	e := echo.New()
	handler, budgets := newAdvisorHandlerFixture()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(40000))

	body := `{"amount":"5000","category":"alimentation"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.Analyze(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if result.Score != 6 {
		t.Errorf("Expected score 6, got %d", result.Score)
	}
	if result.Color != domain.TierOrange {
		t.Errorf("Expected orange tier, got %s", result.Color)
	}
	if !result.Approved {
		t.Error("Expected the expense to be approved")
	}
}

func TestAnalyze_NoBudget(t *testing.T) {
	e := echo.New()
	handler, _ := newAdvisorHandlerFixture()

	body := `{"amount":"5000","category":"transport"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.Analyze(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var result service.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if result.Score != 5 {
		t.Errorf("Expected neutral score 5, got %d", result.Score)
	}
	if result.Error == "" {
		t.Error("Expected the no-budget error message to be set")
	}
}

func TestChat_SuggestsTransaction(t *testing.T) {
	e := echo.New()
	handler, budgets := newAdvisorHandlerFixture()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(50000), decimal.NewFromInt(10000))

	body := `{"message":"j'ai dépensé 5000 francs en nourriture"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.Chat(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reply advisor.Reply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("Failed to unmarshal reply: %v", err)
	}
	if reply.Intent != domain.IntentExpensePast {
		t.Errorf("Expected expense_past intent, got %s", reply.Intent)
	}
	if !reply.CanAddTransaction || reply.SuggestedTransaction == nil {
		t.Fatal("Expected a suggested transaction")
	}
	if reply.SuggestedTransaction.Category != domain.CategoryAlimentation {
		t.Errorf("Expected alimentation, got %s", reply.SuggestedTransaction.Category)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	e := echo.New()
	handler, _ := newAdvisorHandlerFixture()

	body := `{"message":"  "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.Chat(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestConfirmProposal_RecordsExpense(t *testing.T) {
	e := echo.New()
	handler, budgets := newAdvisorHandlerFixture()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryTransport, decimal.NewFromInt(20000), decimal.Zero)

	body := `{"amount":"2000","category":"transport","description":"taxi","type":"expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisor/chat/confirm", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.ConfirmProposal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	budget, err := budgets.GetByCategory(userID, domain.CategoryTransport)
	if err != nil {
		t.Fatalf("Expected budget, got %v", err)
	}
	if !budget.CurrentSpent.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected current spent 2000, got %s", budget.CurrentSpent)
	}
}

func TestGetProjection(t *testing.T) {
	e := echo.New()
	handler, budgets := newAdvisorHandlerFixture()
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAlimentation, decimal.NewFromInt(30000), decimal.NewFromInt(1000))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisor/projection", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.GetProjection(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var result service.ProjectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if len(result.Projection.Budgets) != 1 {
		t.Fatalf("Expected one budget projection, got %d", len(result.Projection.Budgets))
	}
	if result.Advice == "" {
		t.Error("Expected an advice message")
	}
}
