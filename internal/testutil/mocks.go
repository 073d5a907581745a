package testutil

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/websocket"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[uuid.UUID]*domain.User
	ByEmail    map[string]*domain.User
	ByGoogleID map[string]*domain.User
	ByUsername map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[uuid.UUID]*domain.User),
		ByEmail:    make(map[string]*domain.User),
		ByGoogleID: make(map[string]*domain.User),
		ByUsername: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock store
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
	m.ByUsername[user.Username] = user
	if user.GoogleID != nil {
		m.ByGoogleID[*user.GoogleID] = user
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByGoogleID retrieves a user by Google ID
func (m *MockUserRepository) GetByGoogleID(googleID string) (*domain.User, error) {
	if user, ok := m.ByGoogleID[googleID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.ByUsername[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailAlreadyUsed
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.AddUser(user)
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	m.AddUser(user)
	return user, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int32]*domain.Budget
	nextID  int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
	}
}

// AddBudget adds a budget to the mock store and returns it
func (m *MockBudgetRepository) AddBudget(userID uuid.UUID, category domain.Category, limit, spent decimal.Decimal) *domain.Budget {
	m.nextID++
	b := &domain.Budget{
		ID:           m.nextID,
		UserID:       userID,
		Category:     category,
		MonthlyLimit: limit,
		CurrentSpent: spent,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.Budgets[b.ID] = b
	return b
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.UserID == budget.UserID && b.Category == budget.Category {
			return nil, domain.ErrBudgetAlreadyExists
		}
	}
	m.nextID++
	budget.ID = m.nextID
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	if b, ok := m.Budgets[id]; ok && b.UserID == userID {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByCategory retrieves a user's budget for a category
func (m *MockBudgetRepository) GetByCategory(userID uuid.UUID, category domain.Category) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.UserID == userID && b.Category == category {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAllByUser retrieves all budgets for a user
func (m *MockBudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	budgets := []*domain.Budget{}
	for _, b := range m.Budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	return budgets, nil
}

// Update updates a budget
func (m *MockBudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	existing, ok := m.Budgets[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return nil, domain.ErrBudgetNotFound
	}
	existing.MonthlyLimit = budget.MonthlyLimit
	existing.UpdatedAt = time.Now()
	return existing, nil
}

// AddSpent increments a budget's current spend, floored at zero
func (m *MockBudgetRepository) AddSpent(userID uuid.UUID, category domain.Category, delta decimal.Decimal) (*domain.Budget, error) {
	b, err := m.GetByCategory(userID, category)
	if err != nil {
		return nil, err
	}
	b.CurrentSpent = b.CurrentSpent.Add(delta)
	if b.CurrentSpent.LessThan(decimal.Zero) {
		b.CurrentSpent = decimal.Zero
	}
	b.UpdatedAt = time.Now()
	return b, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	if b, ok := m.Budgets[id]; ok && b.UserID == userID {
		delete(m.Budgets, id)
		return nil
	}
	return domain.ErrBudgetNotFound
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	nextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	m.nextID++
	transaction.ID = m.nextID
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAllByUser retrieves a user's transactions
func (m *MockTransactionRepository) GetAllByUser(userID uuid.UUID, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	transactions := []*domain.Transaction{}
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if filters != nil && filters.Category != nil && t.Category != *filters.Category {
			continue
		}
		if filters != nil && filters.Type != nil && t.Type != *filters.Type {
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// Update updates a transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return nil, domain.ErrTransactionNotFound
	}
	existing.Description = transaction.Description
	return existing, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id int32) error {
	if t, ok := m.Transactions[id]; ok && t.UserID == userID {
		delete(m.Transactions, id)
		return nil
	}
	return domain.ErrTransactionNotFound
}

// Summarize aggregates a user's transactions
func (m *MockTransactionRepository) Summarize(userID uuid.UUID) (*domain.TransactionSummary, error) {
	summary := &domain.TransactionSummary{
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
		ByCategory:    make(map[domain.Category]decimal.Decimal),
	}
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		summary.Count++
		switch t.Type {
		case domain.TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			prev, ok := summary.ByCategory[t.Category]
			if !ok {
				prev = decimal.Zero
			}
			summary.ByCategory[t.Category] = prev.Add(t.Amount)
		case domain.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals  map[int32]*domain.Goal
	nextID int32
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		Goals: make(map[int32]*domain.Goal),
	}
}

// AddGoal adds a goal to the mock store and returns it
func (m *MockGoalRepository) AddGoal(userID uuid.UUID, name string, target, current decimal.Decimal) *domain.Goal {
	m.nextID++
	g := &domain.Goal{
		ID:            m.nextID,
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.Goals[g.ID] = g
	return g
}

// Create creates a new goal
func (m *MockGoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	m.nextID++
	goal.ID = m.nextID
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by ID
func (m *MockGoalRepository) GetByID(userID uuid.UUID, id int32) (*domain.Goal, error) {
	if g, ok := m.Goals[id]; ok && g.UserID == userID {
		return g, nil
	}
	return nil, domain.ErrGoalNotFound
}

// GetAllByUser retrieves a user's goals
func (m *MockGoalRepository) GetAllByUser(userID uuid.UUID, includeCompleted bool) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	for _, g := range m.Goals {
		if g.UserID != userID {
			continue
		}
		if !includeCompleted && g.IsCompleted {
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// Update updates a goal
func (m *MockGoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	existing, ok := m.Goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return nil, domain.ErrGoalNotFound
	}
	m.Goals[goal.ID] = goal
	goal.UpdatedAt = time.Now()
	return goal, nil
}

// Delete removes a goal
func (m *MockGoalRepository) Delete(userID uuid.UUID, id int32) error {
	if g, ok := m.Goals[id]; ok && g.UserID == userID {
		delete(m.Goals, id)
		return nil
	}
	return domain.ErrGoalNotFound
}

// MockEventPublisher captures published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent pairs an event with the user it was sent to
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// EventTypes returns the types of all published events in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Event.Type)
	}
	return types
}
