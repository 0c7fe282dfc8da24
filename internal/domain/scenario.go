package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrScenarioTitleEmpty      = errors.New("scenario title is required")
	ErrScenarioTitleTooLong    = errors.New("scenario title must be 255 characters or less")
	ErrScenarioDescTooLong     = errors.New("scenario description must be 1000 characters or less")
	ErrScenarioMonthsInvalid   = errors.New("scenario months must not be negative")
	ErrScenarioStartMonthRange = errors.New("scenario start month must be between 1 and 12")
)

// ProjectionConfig is the immutable configuration for one projection run.
type ProjectionConfig struct {
	// Months is the horizon length. Zero yields an empty result.
	Months int `json:"months"`
	// DefaultVATRate applies when a line item carries no VAT rate of its own.
	DefaultVATRate float64 `json:"defaultVatRate"`
	// StartYear and StartMonth anchor month index 1 on the calendar; they
	// only drive the annual grouping of the funding plan.
	StartYear  int `json:"startYear"`
	StartMonth int `json:"startMonth"`
	// CorporateTaxRate is applied to positive pre-tax earnings only.
	CorporateTaxRate float64 `json:"corporateTaxRate"`
	// DSODays and DPODays are the average collection/payment delays in days,
	// converted to a whole-month shift with ceil(days/30).
	DSODays int `json:"dsoDays"`
	DPODays int `json:"dpoDays"`
	// InitialCash is the opening cash balance at month 1.
	InitialCash decimal.Decimal `json:"initialCash"`
}

// Scenario aggregates one projection configuration with every assumption
// collection. It is the unit of persistence and of projection: the engine
// is a pure function of a scenario snapshot.
type Scenario struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`

	Config       ProjectionConfig `json:"config"`
	CurrencyCode string           `json:"currencyCode"`

	Activities         []Activity         `json:"activities"`
	Orders             []Order            `json:"orders"`
	OneTimeRanges      []SalesRange       `json:"oneTimeRanges"`
	SubscriptionRanges []SalesRange       `json:"subscriptionRanges"`
	Personnel          []PersonnelLine    `json:"personnel"`
	Charges            []ExternalCharge   `json:"charges"`
	Investments        []Investment       `json:"investments"`
	Loans              []Loan             `json:"loans"`
	CapitalInjections  []CapitalInjection `json:"capitalInjections"`
	Subsidies          []Subsidy          `json:"subsidies"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Scenario) Validate() error {
	if s.Title == "" {
		return ErrScenarioTitleEmpty
	}
	if len(s.Title) > MaxScenarioTitleLength {
		return ErrScenarioTitleTooLong
	}
	if s.Description != nil && len(*s.Description) > MaxScenarioDescriptionLength {
		return ErrScenarioDescTooLong
	}
	if s.Config.Months < 0 {
		return ErrScenarioMonthsInvalid
	}
	if s.Config.StartMonth < 1 || s.Config.StartMonth > 12 {
		return ErrScenarioStartMonthRange
	}
	for i := range s.Activities {
		if err := s.Activities[i].Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(s.Activities))
	for i := range s.Activities {
		if seen[s.Activities[i].Name] {
			return ErrDuplicateActivity
		}
		seen[s.Activities[i].Name] = true
	}
	for i := range s.Loans {
		if err := s.Loans[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ScenarioRepository defines scenario persistence.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *Scenario) (*Scenario, error)
	GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*Scenario, error)
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*Scenario, error)
	Update(ctx context.Context, scenario *Scenario) (*Scenario, error)
	Delete(ctx context.Context, workspaceID int32, id uuid.UUID) error
}
