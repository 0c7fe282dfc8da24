package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/websocket"
)

// ScenarioService handles scenario business logic
type ScenarioService struct {
	repo      domain.ScenarioRepository
	projector *ProjectionService
	publisher websocket.EventPublisher
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(repo domain.ScenarioRepository, projector *ProjectionService, publisher websocket.EventPublisher) *ScenarioService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ScenarioService{
		repo:      repo,
		projector: projector,
		publisher: publisher,
	}
}

// Create validates and persists a new scenario
func (s *ScenarioService) Create(ctx context.Context, workspaceID int32, scenario *domain.Scenario) (*domain.Scenario, error) {
	scenario.WorkspaceID = workspaceID
	scenario.Title = strings.TrimSpace(scenario.Title)
	if scenario.CurrencyCode == "" {
		scenario.CurrencyCode = "EUR"
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, scenario)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create scenario")
		return nil, err
	}

	log.Info().
		Str("scenario_id", created.ID.String()).
		Int32("workspace_id", workspaceID).
		Msg("Scenario created")

	s.publisher.Publish(workspaceID, websocket.ScenarioCreated(created))
	return created, nil
}

// GetByID retrieves a scenario by ID within a workspace
func (s *ScenarioService) GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*domain.Scenario, error) {
	return s.repo.GetByID(ctx, workspaceID, id)
}

// List retrieves all scenarios for a workspace
func (s *ScenarioService) List(ctx context.Context, workspaceID int32) ([]*domain.Scenario, error) {
	return s.repo.ListByWorkspace(ctx, workspaceID)
}

// Update validates and persists changes to an existing scenario
func (s *ScenarioService) Update(ctx context.Context, workspaceID int32, scenario *domain.Scenario) (*domain.Scenario, error) {
	scenario.WorkspaceID = workspaceID
	scenario.Title = strings.TrimSpace(scenario.Title)
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	// Ensure the scenario exists in this workspace before writing
	if _, err := s.repo.GetByID(ctx, workspaceID, scenario.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, scenario)
	if err != nil {
		log.Error().Err(err).
			Str("scenario_id", scenario.ID.String()).
			Int32("workspace_id", workspaceID).
			Msg("Failed to update scenario")
		return nil, err
	}

	s.publisher.Publish(workspaceID, websocket.ScenarioUpdated(updated))
	return updated, nil
}

// Delete removes a scenario
func (s *ScenarioService) Delete(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, workspaceID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, workspaceID, id); err != nil {
		log.Error().Err(err).
			Str("scenario_id", id.String()).
			Int32("workspace_id", workspaceID).
			Msg("Failed to delete scenario")
		return err
	}

	log.Info().
		Str("scenario_id", id.String()).
		Int32("workspace_id", workspaceID).
		Msg("Scenario deleted")

	s.publisher.Publish(workspaceID, websocket.ScenarioDeleted(map[string]string{"id": id.String()}))
	return nil
}

// EffectiveOrders merges a scenario's manual orders with the expansion of
// its one-time and subscription sales ranges. The second return value is
// the subscription subset, kept separate for recurring-revenue reporting.
func EffectiveOrders(scenario *domain.Scenario) (orders, subscription []domain.Order) {
	months := scenario.Config.Months
	subscription = ExpandSalesRanges(scenario.SubscriptionRanges, months)

	orders = make([]domain.Order, 0, len(scenario.Orders))
	orders = append(orders, scenario.Orders...)
	orders = append(orders, ExpandSalesRanges(scenario.OneTimeRanges, months)...)
	orders = append(orders, subscription...)
	return orders, subscription
}

// BuildProjectionInput assembles the engine input from a scenario snapshot.
func BuildProjectionInput(scenario *domain.Scenario) ProjectionInput {
	orders, subscription := EffectiveOrders(scenario)
	return ProjectionInput{
		Config:             scenario.Config,
		Activities:         scenario.Activities,
		Orders:             orders,
		Personnel:          scenario.Personnel,
		Charges:            scenario.Charges,
		Investments:        scenario.Investments,
		Loans:              scenario.Loans,
		CapitalInjections:  scenario.CapitalInjections,
		Subsidies:          scenario.Subsidies,
		SubscriptionOrders: subscription,
	}
}

// Project loads a scenario and runs the projection over it
func (s *ScenarioService) Project(ctx context.Context, workspaceID int32, id uuid.UUID) (*ProjectionResult, error) {
	scenario, err := s.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	result := s.projector.Compute(BuildProjectionInput(scenario))

	log.Info().
		Str("scenario_id", id.String()).
		Int32("workspace_id", workspaceID).
		Int("months", scenario.Config.Months).
		Msg("Projection computed")

	s.publisher.Publish(workspaceID, websocket.ProjectionCompleted(map[string]interface{}{
		"scenarioId": id.String(),
		"months":     scenario.Config.Months,
	}))
	return result, nil
}

// Preview runs the projection over an unsaved scenario without persisting it
func (s *ScenarioService) Preview(scenario *domain.Scenario) (*ProjectionResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return s.projector.Compute(BuildProjectionInput(scenario)), nil
}
