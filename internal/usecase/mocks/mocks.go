package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	CreateTxFunc             func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error
	GetByUserIDFunc          func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, userID string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc                 func(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Seed inserts a wallet directly into the backing map.
func (m *MockWalletRepository) Seed(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
}

func (m *MockWalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, wallet)
	}
	if stage(tx, func() { m.Seed(wallet) }) {
		return nil
	}
	m.Seed(wallet)
	return nil
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[userID]; ok {
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, userID string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, userID, balance, updatedAt)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if w, ok := m.wallets[userID]; ok {
			w.Balance = balance
			w.Version++
			w.UpdatedAt = updatedAt
		}
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockWalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, w := range m.wallets {
		wallets = append(wallets, w)
	}
	return wallets, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu     sync.RWMutex
	txns   map[string]*domain.Transaction
	byRef  map[string]*domain.Transaction

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	GetByReferenceFunc     func(ctx context.Context, reference string) (*domain.Transaction, error)
	UpdateStatusFunc       func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	ListByUserFunc         func(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	SumCompletedByUserFunc func(ctx context.Context, userID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txns:  make(map[string]*domain.Transaction),
		byRef: make(map[string]*domain.Transaction),
	}
}

// Seed inserts a transaction directly into the backing maps.
func (m *MockTransactionRepository) Seed(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
	m.byRef[txn.Reference] = txn
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	if _, ok := m.byRef[txn.Reference]; ok {
		m.mu.Unlock()
		return domain.ErrReferenceConflict
	}
	m.mu.Unlock()
	if stage(tx, func() { m.Seed(txn) }) {
		return nil
	}
	m.Seed(txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txns[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.byRef[reference]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t, ok := m.txns[id]; ok {
			t.Status = status
			t.UpdatedAt = updatedAt
		}
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, t := range m.txns {
		if t.UserID != userID {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (m *MockTransactionRepository) SumCompletedByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	if m.SumCompletedByUserFunc != nil {
		return m.SumCompletedByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range m.txns {
		if t.UserID != userID || t.Status != domain.TransactionStatusCompleted {
			continue
		}
		sum = sum.Add(t.SignedAmount())
	}
	return sum, nil
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project

	CreateFunc           func(ctx context.Context, project *domain.Project) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Project, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Project, error)
	UpdateFundingFunc    func(ctx context.Context, tx usecase.Transaction, id string, currentFunding decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.ProjectStatus, updatedAt time.Time) error
	ActivateFunc         func(ctx context.Context, tx usecase.Transaction, id string, activatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Project, error)
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		projects: make(map[string]*domain.Project),
	}
}

// Seed inserts a project directly into the backing map.
func (m *MockProjectRepository) Seed(project *domain.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ID] = project
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (m *MockProjectRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Project, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockProjectRepository) UpdateFunding(ctx context.Context, tx usecase.Transaction, id string, currentFunding decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateFundingFunc != nil {
		return m.UpdateFundingFunc(ctx, tx, id, currentFunding, updatedAt)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if p, ok := m.projects[id]; ok {
			p.CurrentFunding = currentFunding
			p.UpdatedAt = updatedAt
		}
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ProjectStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if p, ok := m.projects[id]; ok {
			p.Status = status
			p.UpdatedAt = updatedAt
		}
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockProjectRepository) Activate(ctx context.Context, tx usecase.Transaction, id string, activatedAt time.Time) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, tx, id, activatedAt)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if p, ok := m.projects[id]; ok {
			p.Status = domain.ProjectStatusActive
			at := activatedAt
			p.ActivatedAt = &at
			p.UpdatedAt = activatedAt
		}
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockProjectRepository) List(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var projects []*domain.Project
	for _, p := range m.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository.
type MockInvestmentRepository struct {
	mu          sync.RWMutex
	investments map[string]*domain.Investment

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error
	ListByProjectFunc  func(ctx context.Context, projectID string) ([]*domain.Investment, error)
	ListByInvestorFunc func(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error)
	SumByProjectFunc   func(ctx context.Context, projectID string) (decimal.Decimal, error)
}

func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{
		investments: make(map[string]*domain.Investment),
	}
}

// Seed inserts an investment directly into the backing map.
func (m *MockInvestmentRepository) Seed(investment *domain.Investment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.investments[investment.ID] = investment
}

func (m *MockInvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, investment)
	}
	if stage(tx, func() { m.Seed(investment) }) {
		return nil
	}
	m.Seed(investment)
	return nil
}

func (m *MockInvestmentRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Investment, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var investments []*domain.Investment
	for _, inv := range m.investments {
		if inv.ProjectID == projectID {
			investments = append(investments, inv)
		}
	}
	return investments, nil
}

func (m *MockInvestmentRepository) ListByInvestor(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error) {
	if m.ListByInvestorFunc != nil {
		return m.ListByInvestorFunc(ctx, investorID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var investments []*domain.Investment
	for _, inv := range m.investments {
		if inv.InvestorID == investorID {
			investments = append(investments, inv)
		}
	}
	return investments, nil
}

func (m *MockInvestmentRepository) SumByProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	if m.SumByProjectFunc != nil {
		return m.SumByProjectFunc(ctx, projectID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, inv := range m.investments {
		if inv.ProjectID == projectID {
			sum = sum.Add(inv.Amount)
		}
	}
	return sum, nil
}

// MockDistributionRepository is a mock implementation of DistributionRepository.
type MockDistributionRepository struct {
	mu            sync.RWMutex
	distributions map[string]*domain.Distribution

	CreateFunc             func(ctx context.Context, distribution *domain.Distribution) error
	GetByProjectPeriodFunc func(ctx context.Context, projectID, period string) (*domain.Distribution, error)
	ListByProjectFunc      func(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error)
}

func NewMockDistributionRepository() *MockDistributionRepository {
	return &MockDistributionRepository{
		distributions: make(map[string]*domain.Distribution),
	}
}

func (m *MockDistributionRepository) key(projectID, period string) string {
	return projectID + "/" + period
}

func (m *MockDistributionRepository) Create(ctx context.Context, distribution *domain.Distribution) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, distribution)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(distribution.ProjectID, distribution.Period)
	if _, ok := m.distributions[k]; ok {
		return domain.ErrReferenceConflict
	}
	m.distributions[k] = distribution
	return nil
}

func (m *MockDistributionRepository) GetByProjectPeriod(ctx context.Context, projectID, period string) (*domain.Distribution, error) {
	if m.GetByProjectPeriodFunc != nil {
		return m.GetByProjectPeriodFunc(ctx, projectID, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.distributions[m.key(projectID, period)]; ok {
		return d, nil
	}
	return nil, domain.ErrDistributionNotFound
}

func (m *MockDistributionRepository) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var distributions []*domain.Distribution
	for _, d := range m.distributions {
		if d.ProjectID == projectID {
			distributions = append(distributions, d)
		}
	}
	return distributions, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns a snapshot of recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, len(m.events))
	copy(events, m.events)
	return events
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	apply := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = append(m.events, event)
	}
	if !stage(tx, apply) {
		apply()
	}
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if stage(tx, func() { _ = m.Create(ctx, log) }) {
		return nil
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	logs := make([]*domain.AuditLog, len(m.logs))
	copy(logs, m.logs)
	return logs, nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction. Writes made
// through the mock repositories inside a transaction are staged and only
// become visible on Commit; Rollback discards them, mirroring the atomicity
// the real store provides.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu   sync.Mutex
	ops  []func()
	done bool
}

// stage queues op for execution at Commit. Called by the mock repositories.
func stage(tx usecase.Transaction, op func()) bool {
	mtx, ok := tx.(*MockTransaction)
	if !ok || mtx == nil {
		return false
	}
	mtx.mu.Lock()
	defer mtx.mu.Unlock()
	mtx.ops = append(mtx.ops, op)
	return true
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return nil
	}
	m.done = true
	for _, op := range m.ops {
		op()
	}
	m.ops = nil
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done = true
	m.ops = nil
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation once with no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
