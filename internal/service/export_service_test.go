package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/testutil"
)

func TestRenderProjectionCSV(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config: domain.ProjectionConfig{
			Months: 2, DefaultVATRate: 0.2, StartYear: 2026, StartMonth: 1, CorporateTaxRate: 0.25,
		},
		Activities: []domain.Activity{{Name: "consulting", UnitPrice: decimal.NewFromInt(100)}},
		Orders:     []domain.Order{{Activity: "consulting", Month: 1, Quantity: 10}},
	})

	data, err := RenderProjectionCSV(result)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	csv := string(data)

	for _, section := range []string{"Summary", "Profit and Loss", "Cash Flow", "Funding Plan", "Balance Sheet"} {
		if !strings.Contains(csv, section) {
			t.Errorf("Expected section %q in CSV", section)
		}
	}
	// Month 1 revenue rendered with two decimals
	if !strings.Contains(csv, "1000") {
		t.Errorf("Expected revenue 1000 in CSV output")
	}
}

func TestExportService_ExportCSV(t *testing.T) {
	repo := testutil.NewMockScenarioRepository()
	store := testutil.NewMockReportStore()
	publisher := &testutil.CapturePublisher{}
	scenarios := NewScenarioService(repo, NewProjectionService(), nil)
	svc := NewExportService(scenarios, store, publisher)

	created, err := scenarios.Create(context.Background(), 7, &domain.Scenario{
		Title: "Export me",
		Config: domain.ProjectionConfig{
			Months: 3, DefaultVATRate: 0.2, StartYear: 2026, StartMonth: 1, CorporateTaxRate: 0.25,
		},
		Activities: []domain.Activity{{Name: "consulting", UnitPrice: decimal.NewFromInt(100)}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := svc.ExportCSV(context.Background(), 7, created.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.ObjectPath, "7/reports/"+created.ID.String()+"/") {
		t.Errorf("Unexpected object path: %s", result.ObjectPath)
	}
	if !strings.HasSuffix(result.ObjectPath, ".csv") {
		t.Errorf("Expected .csv suffix: %s", result.ObjectPath)
	}
	if result.URL == "" {
		t.Error("Expected a presigned URL")
	}
	if _, ok := store.Objects[result.ObjectPath]; !ok {
		t.Error("Expected object to be uploaded")
	}

	last := publisher.Events[len(publisher.Events)-1]
	if last.Type != "report.created" {
		t.Errorf("Expected report.created event, got %s", last.Type)
	}
}

func TestExportService_UnknownScenario(t *testing.T) {
	repo := testutil.NewMockScenarioRepository()
	scenarios := NewScenarioService(repo, NewProjectionService(), nil)
	svc := NewExportService(scenarios, testutil.NewMockReportStore(), nil)

	_, err := svc.ExportCSV(context.Background(), 7, uuid.New())
	if err != domain.ErrScenarioNotFound {
		t.Errorf("Expected ErrScenarioNotFound, got %v", err)
	}
}
