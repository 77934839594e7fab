package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc     func(ctx context.Context, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	ListActiveFunc func(ctx context.Context) ([]*domain.Account, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed inserts accounts directly, bypassing Create.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Code == account.Code {
			return domain.ErrDuplicateCode
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.IsActive {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// MockRuleRepository is a mock implementation of RuleRepository.
type MockRuleRepository struct {
	mu    sync.RWMutex
	rules map[string]*domain.ImportRule

	CreateFunc     func(ctx context.Context, rule *domain.ImportRule) error
	ListActiveFunc func(ctx context.Context) ([]*domain.ImportRule, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.ImportRule, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{
		rules: make(map[string]*domain.ImportRule),
	}
}

func (m *MockRuleRepository) Seed(rules ...*domain.ImportRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rules {
		m.rules[r.ID] = r
	}
}

func (m *MockRuleRepository) Create(ctx context.Context, rule *domain.ImportRule) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rule)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[rule.ID] = rule
	return nil
}

func (m *MockRuleRepository) ListActive(ctx context.Context) ([]*domain.ImportRule, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rules []*domain.ImportRule
	for _, r := range m.rules {
		if r.IsActive {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })
	return rules, nil
}

func (m *MockRuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.ImportRule, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return m.ListActive(ctx)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[id]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(m.rules, id)
	return nil
}

// MockTemplateRepository is a mock implementation of TemplateRepository.
type MockTemplateRepository struct {
	Templates []*domain.Template

	ListFunc func(ctx context.Context) ([]*domain.Template, error)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*domain.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.Templates, nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.JournalEntry, error)
	UpdateFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	ListFunc            func(ctx context.Context, filter usecase.JournalFilter) ([]*domain.JournalEntry, error)
	ListByDateRangeFunc func(ctx context.Context, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.JournalEntry, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

func (m *MockJournalRepository) Seed(entries ...*domain.JournalEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.entries[e.ID] = e
	}
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.EntryNumber = int64(len(m.entries) + 1)
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) List(ctx context.Context, filter usecase.JournalFilter) ([]*domain.JournalEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryNumber < entries[j].EntryNumber })
	return entries, nil
}

func (m *MockJournalRepository) ListByDateRange(ctx context.Context, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.JournalEntry, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, from, to, statuses)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		for _, s := range statuses {
			if e.Status == s {
				entries = append(entries, e)
				break
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryNumber < entries[j].EntryNumber })
	return entries, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	Lines     []*domain.PostedLine
	OpenLines []*domain.PostedLine

	LinesByAccountFunc     func(ctx context.Context, accountID string, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.PostedLine, error)
	OpenLinesByAccountFunc func(ctx context.Context, accountID string, asOf time.Time) ([]*domain.PostedLine, error)
}

func (m *MockLedgerRepository) LinesByAccount(ctx context.Context, accountID string, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.PostedLine, error) {
	if m.LinesByAccountFunc != nil {
		return m.LinesByAccountFunc(ctx, accountID, from, to, statuses)
	}
	var lines []*domain.PostedLine
	for _, l := range m.Lines {
		if l.AccountID == accountID && !l.Date.Before(from) && !l.Date.After(to) {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (m *MockLedgerRepository) OpenLinesByAccount(ctx context.Context, accountID string, asOf time.Time) ([]*domain.PostedLine, error) {
	if m.OpenLinesByAccountFunc != nil {
		return m.OpenLinesByAccountFunc(ctx, accountID, asOf)
	}
	var lines []*domain.PostedLine
	for _, l := range m.OpenLines {
		if l.AccountID == accountID && !l.Settled && !l.Date.After(asOf) {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Transactions []*MockTransaction
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator. It returns
// deterministic sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	Hits   int
	Misses int
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		m.Hits++
		return v, nil
	}
	m.Misses++
	return "", nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		values: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	m.values[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
