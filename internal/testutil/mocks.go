package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/websocket"
)

// MockScenarioRepository is a mock implementation of domain.ScenarioRepository
type MockScenarioRepository struct {
	Scenarios map[uuid.UUID]*domain.Scenario
	CreateFn  func(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error)
	UpdateFn  func(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error)
}

// NewMockScenarioRepository creates a new MockScenarioRepository
func NewMockScenarioRepository() *MockScenarioRepository {
	return &MockScenarioRepository{
		Scenarios: make(map[uuid.UUID]*domain.Scenario),
	}
}

// Create persists a scenario
func (m *MockScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, scenario)
	}
	scenario.ID = uuid.New()
	scenario.CreatedAt = time.Now().UTC()
	scenario.UpdatedAt = scenario.CreatedAt
	m.Scenarios[scenario.ID] = scenario
	return scenario, nil
}

// GetByID retrieves a scenario by ID within a workspace
func (m *MockScenarioRepository) GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*domain.Scenario, error) {
	scenario, ok := m.Scenarios[id]
	if !ok || scenario.WorkspaceID != workspaceID {
		return nil, domain.ErrScenarioNotFound
	}
	return scenario, nil
}

// ListByWorkspace retrieves all scenarios for a workspace
func (m *MockScenarioRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Scenario, error) {
	var out []*domain.Scenario
	for _, s := range m.Scenarios {
		if s.WorkspaceID == workspaceID {
			out = append(out, s)
		}
	}
	return out, nil
}

// Update persists changes to a scenario
func (m *MockScenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, scenario)
	}
	existing, ok := m.Scenarios[scenario.ID]
	if !ok || existing.WorkspaceID != scenario.WorkspaceID {
		return nil, domain.ErrScenarioNotFound
	}
	scenario.CreatedAt = existing.CreatedAt
	scenario.UpdatedAt = time.Now().UTC()
	m.Scenarios[scenario.ID] = scenario
	return scenario, nil
}

// Delete removes a scenario
func (m *MockScenarioRepository) Delete(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	scenario, ok := m.Scenarios[id]
	if !ok || scenario.WorkspaceID != workspaceID {
		return domain.ErrScenarioNotFound
	}
	delete(m.Scenarios, id)
	return nil
}

// MockAPITokenRepository is a mock implementation of domain.APITokenRepository
type MockAPITokenRepository struct {
	Tokens map[uuid.UUID]*domain.APIToken
}

// NewMockAPITokenRepository creates a new MockAPITokenRepository
func NewMockAPITokenRepository() *MockAPITokenRepository {
	return &MockAPITokenRepository{
		Tokens: make(map[uuid.UUID]*domain.APIToken),
	}
}

// Create persists a token
func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now().UTC()
	m.Tokens[token.ID] = token
	return nil
}

// GetByWorkspace retrieves all active tokens for a workspace
func (m *MockAPITokenRepository) GetByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	var out []*domain.APIToken
	for _, t := range m.Tokens {
		if t.WorkspaceID == workspaceID && t.RevokedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetByHash retrieves an active token by hash
func (m *MockAPITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	for _, t := range m.Tokens {
		if t.TokenHash == hash && t.RevokedAt == nil {
			return t, nil
		}
	}
	return nil, domain.ErrAPITokenNotFound
}

// Revoke marks a token as revoked
func (m *MockAPITokenRepository) Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	t, ok := m.Tokens[id]
	if !ok || t.WorkspaceID != workspaceID || t.RevokedAt != nil {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now().UTC()
	t.RevokedAt = &now
	return nil
}

// UpdateLastUsed updates the last_used_at timestamp
func (m *MockAPITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	t, ok := m.Tokens[id]
	if !ok {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now().UTC()
	t.LastUsedAt = &now
	return nil
}

// MockReportStore is an in-memory mock of storage.ReportStore
type MockReportStore struct {
	Objects   map[string][]byte
	UploadErr error
}

// NewMockReportStore creates a new MockReportStore
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{
		Objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory
func (m *MockReportStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes an object
func (m *MockReportStore) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a stable fake URL
func (m *MockReportStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://reports.test/" + objectPath, nil
}

// CapturePublisher records published events for assertions
type CapturePublisher struct {
	Events []websocket.Event
}

// Publish records the event
func (p *CapturePublisher) Publish(workspaceID int32, event websocket.Event) {
	p.Events = append(p.Events, event)
}
