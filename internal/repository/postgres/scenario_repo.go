package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/plancast/plancast-backend/internal/domain"
)

// ScenarioRepository implements domain.ScenarioRepository using PostgreSQL.
// Projection configuration lives in scalar columns; the assumption
// collections are stored as JSONB documents.
type ScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new ScenarioRepository
func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

const scenarioColumns = `
	id, workspace_id, title, description, currency_code,
	months, default_vat_rate, start_year, start_month,
	corporate_tax_rate, dso_days, dpo_days, initial_cash,
	activities, orders, one_time_ranges, subscription_ranges,
	personnel, charges, investments, loans, capital_injections, subsidies,
	created_at, updated_at`

// scenarioCollections marshals every assumption collection to JSONB input.
func scenarioCollections(s *domain.Scenario) ([][]byte, error) {
	values := []interface{}{
		s.Activities, s.Orders, s.OneTimeRanges, s.SubscriptionRanges,
		s.Personnel, s.Charges, s.Investments, s.Loans,
		s.CapitalInjections, s.Subsidies,
	}
	out := make([][]byte, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scenario collection: %w", err)
		}
		out[i] = data
	}
	return out, nil
}

// Create persists a new scenario and returns it with generated fields set
func (r *ScenarioRepository) Create(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error) {
	collections, err := scenarioCollections(scenario)
	if err != nil {
		return nil, err
	}
	initialCash, err := decimalToPgNumeric(scenario.Config.InitialCash)
	if err != nil {
		return nil, fmt.Errorf("invalid initial cash: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO scenarios (
			workspace_id, title, description, currency_code,
			months, default_vat_rate, start_year, start_month,
			corporate_tax_rate, dso_days, dpo_days, initial_cash,
			activities, orders, one_time_ranges, subscription_ranges,
			personnel, charges, investments, loans, capital_injections, subsidies
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING `+scenarioColumns,
		scenario.WorkspaceID, scenario.Title, scenario.Description, scenario.CurrencyCode,
		scenario.Config.Months, scenario.Config.DefaultVATRate,
		scenario.Config.StartYear, scenario.Config.StartMonth,
		scenario.Config.CorporateTaxRate, scenario.Config.DSODays, scenario.Config.DPODays,
		initialCash,
		collections[0], collections[1], collections[2], collections[3],
		collections[4], collections[5], collections[6], collections[7],
		collections[8], collections[9],
	)
	return scanScenario(row)
}

// GetByID retrieves a scenario by ID within a workspace
func (r *ScenarioRepository) GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*domain.Scenario, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+scenarioColumns+`
		FROM scenarios
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	scenario, err := scanScenario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, err
	}
	return scenario, nil
}

// ListByWorkspace retrieves all scenarios for a workspace, newest first
func (r *ScenarioRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Scenario, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scenarioColumns+`
		FROM scenarios
		WHERE workspace_id = $1
		ORDER BY created_at DESC`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, rows.Err()
}

// Update persists changes to an existing scenario
func (r *ScenarioRepository) Update(ctx context.Context, scenario *domain.Scenario) (*domain.Scenario, error) {
	collections, err := scenarioCollections(scenario)
	if err != nil {
		return nil, err
	}
	initialCash, err := decimalToPgNumeric(scenario.Config.InitialCash)
	if err != nil {
		return nil, fmt.Errorf("invalid initial cash: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE scenarios SET
			title = $3, description = $4, currency_code = $5,
			months = $6, default_vat_rate = $7, start_year = $8, start_month = $9,
			corporate_tax_rate = $10, dso_days = $11, dpo_days = $12, initial_cash = $13,
			activities = $14, orders = $15, one_time_ranges = $16, subscription_ranges = $17,
			personnel = $18, charges = $19, investments = $20, loans = $21,
			capital_injections = $22, subsidies = $23,
			updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+scenarioColumns,
		scenario.WorkspaceID, scenario.ID,
		scenario.Title, scenario.Description, scenario.CurrencyCode,
		scenario.Config.Months, scenario.Config.DefaultVATRate,
		scenario.Config.StartYear, scenario.Config.StartMonth,
		scenario.Config.CorporateTaxRate, scenario.Config.DSODays, scenario.Config.DPODays,
		initialCash,
		collections[0], collections[1], collections[2], collections[3],
		collections[4], collections[5], collections[6], collections[7],
		collections[8], collections[9],
	)
	updated, err := scanScenario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a scenario
func (r *ScenarioRepository) Delete(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM scenarios
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScenarioNotFound
	}
	return nil
}

// scanScenario reads one scenario row, unmarshalling JSONB collections
func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var (
		s           domain.Scenario
		initialCash pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		raw         [10][]byte
	)

	err := row.Scan(
		&s.ID, &s.WorkspaceID, &s.Title, &s.Description, &s.CurrencyCode,
		&s.Config.Months, &s.Config.DefaultVATRate, &s.Config.StartYear, &s.Config.StartMonth,
		&s.Config.CorporateTaxRate, &s.Config.DSODays, &s.Config.DPODays, &initialCash,
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4],
		&raw[5], &raw[6], &raw[7], &raw[8], &raw[9],
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Config.InitialCash = pgNumericToDecimal(initialCash)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	targets := []interface{}{
		&s.Activities, &s.Orders, &s.OneTimeRanges, &s.SubscriptionRanges,
		&s.Personnel, &s.Charges, &s.Investments, &s.Loans,
		&s.CapitalInjections, &s.Subsidies,
	}
	for i, data := range raw {
		if len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, targets[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario collection: %w", err)
		}
	}
	return &s, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
