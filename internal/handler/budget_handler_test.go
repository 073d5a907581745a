package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/service"
	"github.com/gertonargent/gta-backend/internal/testutil"
)

func newBudgetHandlerFixture() *BudgetHandler {
	budgetService := service.NewBudgetService(testutil.NewMockBudgetRepository(), testutil.NewMockEventPublisher())
	return NewBudgetHandler(budgetService)
}

func TestCreateBudget_Success(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandlerFixture()

	body := `{"category":"alimentation","monthlyLimit":"50000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var budget domain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &budget); err != nil {
		t.Fatalf("Failed to unmarshal budget: %v", err)
	}
	if budget.Category != domain.CategoryAlimentation {
		t.Errorf("Expected alimentation, got %s", budget.Category)
	}
	if !budget.CurrentSpent.IsZero() {
		t.Errorf("Expected zero current spent, got %s", budget.CurrentSpent)
	}
}

func TestCreateBudget_DuplicateCategory(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandlerFixture()
	userID := uuid.New()

	body := `{"category":"transport","monthlyLimit":"20000"}`
	for i, wantStatus := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		setupAuthContext(c, userID)

		if err := handler.CreateBudget(c); err != nil {
			t.Fatalf("Attempt %d: expected JSON response, got error: %v", i, err)
		}
		if rec.Code != wantStatus {
			t.Errorf("Attempt %d: expected status %d, got %d", i, wantStatus, rec.Code)
		}
	}
}

func TestCreateBudget_InvalidCategory(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandlerFixture()

	body := `{"category":"voyages","monthlyLimit":"20000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateBudget_NotFound(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandlerFixture()

	body := `{"monthlyLimit":"30000"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets/7", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	setupAuthContext(c, uuid.New())

	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetBudgetSummary(t *testing.T) {
	e := echo.New()
	budgets := testutil.NewMockBudgetRepository()
	handler := NewBudgetHandler(service.NewBudgetService(budgets, testutil.NewMockEventPublisher()))
	userID := uuid.New()
	budgets.AddBudget(userID, domain.CategoryAlimentation, decimalFromInt(50000), decimalFromInt(25000))
	budgets.AddBudget(userID, domain.CategoryTransport, decimalFromInt(50000), decimalFromInt(25000))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.GetBudgetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var summary service.BudgetSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal summary: %v", err)
	}
	if !summary.TotalLimit.Equal(decimalFromInt(100000)) {
		t.Errorf("Expected total limit 100000, got %s", summary.TotalLimit)
	}
	if !summary.UsagePercent.Equal(decimalFromInt(50)) {
		t.Errorf("Expected 50%% usage, got %s", summary.UsagePercent)
	}
}
