package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/plancast/plancast-backend/internal/repository/storage"
	"github.com/plancast/plancast-backend/internal/websocket"
)

// reportURLExpiry bounds how long an exported report link stays valid.
const reportURLExpiry = 15 * time.Minute

// ExportService renders projection results to CSV and stores them
type ExportService struct {
	scenarios *ScenarioService
	store     storage.ReportStore
	publisher websocket.EventPublisher
}

// NewExportService creates a new ExportService
func NewExportService(scenarios *ScenarioService, store storage.ReportStore, publisher websocket.EventPublisher) *ExportService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ExportService{scenarios: scenarios, store: store, publisher: publisher}
}

// ExportResult describes a stored report and its temporary download URL
type ExportResult struct {
	ObjectPath string    `json:"objectPath"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ExportCSV runs the projection for a scenario, renders it as CSV, uploads
// it to the report store and returns a presigned download URL.
func (s *ExportService) ExportCSV(ctx context.Context, workspaceID int32, scenarioID uuid.UUID) (*ExportResult, error) {
	result, err := s.scenarios.Project(ctx, workspaceID, scenarioID)
	if err != nil {
		return nil, err
	}

	data, err := RenderProjectionCSV(result)
	if err != nil {
		return nil, err
	}

	objectPath := storage.GenerateReportPath(workspaceID, scenarioID, ".csv")
	if _, err := s.store.Upload(ctx, objectPath, bytes.NewReader(data), "text/csv", int64(len(data))); err != nil {
		log.Error().Err(err).
			Str("scenario_id", scenarioID.String()).
			Int32("workspace_id", workspaceID).
			Msg("Failed to upload report")
		return nil, err
	}

	url, err := s.store.GeneratePresignedURL(ctx, objectPath, reportURLExpiry)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("scenario_id", scenarioID.String()).
		Int32("workspace_id", workspaceID).
		Str("object_path", objectPath).
		Msg("Report exported")

	s.publisher.Publish(workspaceID, websocket.ReportCreated(map[string]string{
		"scenarioId": scenarioID.String(),
		"objectPath": objectPath,
	}))

	return &ExportResult{
		ObjectPath: objectPath,
		URL:        url,
		ExpiresAt:  time.Now().UTC().Add(reportURLExpiry),
	}, nil
}

// RenderProjectionCSV serializes a projection result into one CSV document.
// Statements are stacked as titled sections separated by blank rows; all
// monetary amounts are rounded to two decimals.
func RenderProjectionCSV(result *ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeSection := func(title string, header []string, rows [][]string) error {
		if err := w.Write([]string{title}); err != nil {
			return err
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return w.Write([]string{})
	}

	summaryRows := make([][]string, 0, len(result.Summary))
	for _, r := range result.Summary {
		summaryRows = append(summaryRows, []string{
			strconv.Itoa(r.Month), money(r.Revenue), money(r.MRR), money(r.GrossMargin),
			money(r.EBITDA), money(r.EBIT), money(r.NetIncome), money(r.ClosingCash),
		})
	}
	if err := writeSection("Summary",
		[]string{"Month", "Revenue", "MRR", "Gross Margin", "EBITDA", "EBIT", "Net Income", "Closing Cash"},
		summaryRows); err != nil {
		return nil, err
	}

	plRows := make([][]string, 0, len(result.ProfitAndLoss))
	for _, r := range result.ProfitAndLoss {
		plRows = append(plRows, []string{
			strconv.Itoa(r.Month), money(r.Revenue), money(r.VariableCosts), money(r.GrossMargin),
			money(r.ExternalCharges), money(r.Personnel), money(r.EBITDA), money(r.Depreciation),
			money(r.EBIT), money(r.LoanInterest), money(r.EBT), money(r.CorporateTax), money(r.NetIncome),
		})
	}
	if err := writeSection("Profit and Loss",
		[]string{"Month", "Revenue", "Variable Costs", "Gross Margin", "External Charges", "Personnel",
			"EBITDA", "Depreciation", "EBIT", "Loan Interest", "EBT", "Corporate Tax", "Net Income"},
		plRows); err != nil {
		return nil, err
	}

	cfRows := make([][]string, 0, len(result.CashFlow))
	for _, r := range result.CashFlow {
		cfRows = append(cfRows, []string{
			strconv.Itoa(r.Month), money(r.OpeningCash), money(r.Collections), money(r.LoanDrawdowns),
			money(r.CapitalInjections), money(r.Subsidies), money(r.TotalInflows),
			money(r.SupplierPayments), money(r.PayrollPayments), money(r.CapexPayments),
			money(r.LoanPayments), money(r.VATSettlement), money(r.CorporateTax), money(r.TotalOutflows),
			money(r.NetFlow), money(r.ClosingCash),
		})
	}
	if err := writeSection("Cash Flow",
		[]string{"Month", "Opening Cash", "Collections", "Loan Drawdowns", "Capital Injections",
			"Subsidies", "Total Inflows", "Supplier Payments", "Payroll", "Capex", "Loan Payments",
			"VAT Settlement", "Corporate Tax", "Total Outflows", "Net Flow", "Closing Cash"},
		cfRows); err != nil {
		return nil, err
	}

	fpRows := make([][]string, 0, len(result.FundingPlan))
	for _, r := range result.FundingPlan {
		fpRows = append(fpRows, []string{
			strconv.Itoa(r.Year), money(r.Inflows), money(r.Outflows), money(r.Investments),
			money(r.LoanDrawdowns), money(r.LoanRepayments), money(r.CapitalAndSubsidies),
			money(r.CashVariation),
		})
	}
	if err := writeSection("Funding Plan",
		[]string{"Year", "Inflows", "Outflows", "Investments", "Loan Drawdowns", "Loan Repayments",
			"Capital and Subsidies", "Cash Variation"},
		fpRows); err != nil {
		return nil, err
	}

	bsRows := make([][]string, 0, len(result.BalanceSheet.Assets))
	for i, a := range result.BalanceSheet.Assets {
		l := result.BalanceSheet.Liabilities[i]
		bsRows = append(bsRows, []string{
			strconv.Itoa(a.Month), money(a.NetFixedAssets), money(a.AccountsReceivable), money(a.Cash),
			money(a.TotalAssets), money(l.Equity), money(l.FinancialDebt), money(l.AccountsPayable),
			money(l.NetVATPosition), money(l.TotalLiabilities),
		})
	}
	if err := writeSection("Balance Sheet",
		[]string{"Month", "Net Fixed Assets", "Accounts Receivable", "Cash", "Total Assets",
			"Equity", "Financial Debt", "Accounts Payable", "Net VAT Position", "Total Liabilities"},
		bsRows); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}
	return buf.Bytes(), nil
}

// money formats a float amount rounded to two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
