package service

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plancast/plancast-backend/internal/domain"
)

func baseConfig(months int) domain.ProjectionConfig {
	return domain.ProjectionConfig{
		Months:           months,
		DefaultVATRate:   0.2,
		StartYear:        2026,
		StartMonth:       1,
		CorporateTaxRate: 0.25,
	}
}

func singleActivity() []domain.Activity {
	return []domain.Activity{{
		Name:      "consulting",
		UnitPrice: decimal.NewFromInt(100),
	}}
}

func TestCompute_Deterministic(t *testing.T) {
	svc := NewProjectionService()
	input := ProjectionInput{
		Config:     baseConfig(12),
		Activities: singleActivity(),
		Orders: []domain.Order{
			{Activity: "consulting", Month: 1, Quantity: 10},
			{Activity: "consulting", Month: 6, Quantity: 4},
		},
		Loans: []domain.Loan{{
			Label: "bank", Principal: decimal.NewFromInt(50000), AnnualRate: 0.06, Months: 24, StartMonth: 2,
		}},
	}

	first := svc.Compute(input)
	second := svc.Compute(input)

	if !reflect.DeepEqual(first, second) {
		t.Error("Two runs over the same input produced different results")
	}
}

func TestCompute_ZeroHorizon(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{Config: baseConfig(0), Activities: singleActivity()})

	require.NotNil(t, result)
	assert.NotNil(t, result.Summary)
	assert.Len(t, result.Summary, 0)
	assert.Len(t, result.ProfitAndLoss, 0)
	assert.Len(t, result.CashFlow, 0)
	assert.Len(t, result.FundingPlan, 0)
	assert.Len(t, result.BalanceSheet.Assets, 0)
	assert.Len(t, result.BalanceSheet.Liabilities, 0)
}

func TestCompute_OrphanOrderIgnored(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(3),
		Activities: singleActivity(),
		Orders: []domain.Order{
			{Activity: "does-not-exist", Month: 1, Quantity: 100},
			{Activity: "consulting", Month: 0, Quantity: 100},
			{Activity: "consulting", Month: 4, Quantity: 100},
		},
	})

	for _, row := range result.ProfitAndLoss {
		assert.Zero(t, row.Revenue, "month %d", row.Month)
	}
}

func TestCompute_PersonnelWindowClamped(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(12),
		Activities: singleActivity(),
		Personnel: []domain.PersonnelLine{{
			Title:            "engineer",
			MonthlySalary:    decimal.NewFromInt(4000),
			EmployerCostRate: 0.45,
			StartMonth:       0,
			EndMonth:         999,
			// Count zero means a single head
			Count: 0,
		}},
	})

	// 4000 * 1.45 * 1 = 5800 in every month of the horizon
	for _, row := range result.ProfitAndLoss {
		assert.InDelta(t, 5800, row.Personnel, 1e-9, "month %d", row.Month)
	}
}

func TestCompute_VATSettlementLagsOneMonth(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(3),
		Activities: singleActivity(),
		Orders:     []domain.Order{{Activity: "consulting", Month: 1, Quantity: 10}},
	})

	// Net VAT of month 1 (200 collected) settles as an outflow in month 2
	assert.InDelta(t, 0, result.CashFlow[0].VATSettlement, 1e-9)
	assert.InDelta(t, 200, result.CashFlow[1].VATSettlement, 1e-9)
	assert.InDelta(t, 0, result.CashFlow[2].VATSettlement, 1e-9)
}

func TestCompute_FinalMonthVATTruncated(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(2),
		Activities: singleActivity(),
		Orders:     []domain.Order{{Activity: "consulting", Month: 2, Quantity: 10}},
	})

	// Month 2's net VAT would settle in month 3, past the horizon
	assert.InDelta(t, 0, result.CashFlow[0].VATSettlement, 1e-9)
	assert.InDelta(t, 0, result.CashFlow[1].VATSettlement, 1e-9)
}

func TestCompute_NoTaxCreditOnLosses(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(6),
		Activities: singleActivity(),
		Charges: []domain.ExternalCharge{{
			Label:         "rent",
			MonthlyAmount: decimal.NewFromInt(2000),
			StartMonth:    1,
			EndMonth:      6,
		}},
	})

	for _, row := range result.ProfitAndLoss {
		assert.Negative(t, row.EBT, "month %d", row.Month)
		assert.Zero(t, row.CorporateTax, "month %d", row.Month)
		assert.InDelta(t, row.EBT, row.NetIncome, 1e-9, "month %d", row.Month)
	}
}

func TestCompute_CashRollsForward(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config: domain.ProjectionConfig{
			Months: 6, DefaultVATRate: 0.2, StartYear: 2026, StartMonth: 1,
			CorporateTaxRate: 0.25, InitialCash: decimal.NewFromInt(10000),
		},
		Activities: singleActivity(),
		Orders: []domain.Order{
			{Activity: "consulting", Month: 2, Quantity: 5},
			{Activity: "consulting", Month: 4, Quantity: 8},
		},
	})

	assert.InDelta(t, 10000, result.CashFlow[0].OpeningCash, 1e-9)
	for m := 1; m < 6; m++ {
		prev := result.CashFlow[m-1]
		row := result.CashFlow[m]
		assert.InDelta(t, prev.ClosingCash, row.OpeningCash, 1e-9, "month %d", row.Month)
		assert.InDelta(t, row.OpeningCash+row.NetFlow, row.ClosingCash, 1e-9, "month %d", row.Month)
	}
}

func TestCompute_DSOShiftsCollections(t *testing.T) {
	svc := NewProjectionService()
	cfg := baseConfig(4)
	cfg.DSODays = 45 // ceil(45/30) = 2 months
	result := svc.Compute(ProjectionInput{
		Config:     cfg,
		Activities: singleActivity(),
		Orders:     []domain.Order{{Activity: "consulting", Month: 1, Quantity: 10}},
	})

	assert.InDelta(t, 0, result.CashFlow[0].Collections, 1e-9)
	assert.InDelta(t, 0, result.CashFlow[1].Collections, 1e-9)
	assert.InDelta(t, 1200, result.CashFlow[2].Collections, 1e-9)
	assert.InDelta(t, 0, result.CashFlow[3].Collections, 1e-9)
}

func TestCompute_DepreciationStraightLine(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(12),
		Activities: singleActivity(),
		Investments: []domain.Investment{{
			Label:         "laptops",
			Amount:        decimal.NewFromInt(24000),
			PurchaseMonth: 3,
			AmortYears:    2,
		}},
	})

	// 24000 / 24 months = 1000 per month from month 3, clipped at horizon
	for _, row := range result.ProfitAndLoss {
		if row.Month < 3 {
			assert.Zero(t, row.Depreciation, "month %d", row.Month)
		} else {
			assert.InDelta(t, 1000, row.Depreciation, 1e-9, "month %d", row.Month)
		}
	}

	// Capex is paid TTC at purchase month
	assert.InDelta(t, 24000*1.2, result.CashFlow[2].CapexPayments, 1e-9)
}

func TestCompute_LoanFlows(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(12),
		Activities: singleActivity(),
		Loans: []domain.Loan{{
			Label:      "bank",
			Principal:  decimal.NewFromInt(12000),
			AnnualRate: 0,
			Months:     12,
			StartMonth: 1,
		}},
	})

	assert.InDelta(t, 12000, result.CashFlow[0].LoanDrawdowns, 1e-9)
	for _, row := range result.CashFlow {
		assert.InDelta(t, 1000, row.LoanPayments, 1e-9, "month %d", row.Month)
	}
	// Zero-rate loan accrues no interest in the P&L
	for _, row := range result.ProfitAndLoss {
		assert.Zero(t, row.LoanInterest, "month %d", row.Month)
	}
	// Debt balance runs down to zero
	last := result.BalanceSheet.Liabilities[11]
	assert.InDelta(t, 0, last.FinancialDebt, 1e-6)
}

func TestCompute_DegenerateLoansSkipped(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(6),
		Activities: singleActivity(),
		Loans: []domain.Loan{
			{Label: "zero", Principal: decimal.Zero, Months: 12, StartMonth: 1},
			{Label: "no-term", Principal: decimal.NewFromInt(1000), Months: 0, StartMonth: 1},
		},
	})

	for _, row := range result.CashFlow {
		assert.Zero(t, row.LoanDrawdowns, "month %d", row.Month)
		assert.Zero(t, row.LoanPayments, "month %d", row.Month)
	}
}

func TestCompute_MRRIsReportingOnly(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(3),
		Activities: singleActivity(),
		SubscriptionOrders: []domain.Order{
			{Activity: "consulting", Month: 1, Quantity: 5},
		},
	})

	// Subscription orders feed the MRR series but not revenue or cash
	// unless they are also present in Orders.
	assert.InDelta(t, 500, result.Summary[0].MRR, 1e-9)
	assert.Zero(t, result.Summary[0].Revenue)
	assert.Zero(t, result.CashFlow[0].Collections)
}

func TestCompute_FundingPlanGroupsByCalendarYear(t *testing.T) {
	svc := NewProjectionService()
	cfg := domain.ProjectionConfig{
		Months: 24, DefaultVATRate: 0.2, StartYear: 2026, StartMonth: 7, CorporateTaxRate: 0.25,
	}
	result := svc.Compute(ProjectionInput{
		Config:     cfg,
		Activities: singleActivity(),
		CapitalInjections: []domain.CapitalInjection{
			{Label: "seed", Amount: decimal.NewFromInt(50000), Month: 1},
			{Label: "series-a", Amount: decimal.NewFromInt(200000), Month: 13},
		},
	})

	// Months 1-6 fall in 2026, 7-18 in 2027, 19-24 in 2028
	require.Len(t, result.FundingPlan, 3)
	assert.Equal(t, 2026, result.FundingPlan[0].Year)
	assert.Equal(t, 2027, result.FundingPlan[1].Year)
	assert.Equal(t, 2028, result.FundingPlan[2].Year)

	assert.InDelta(t, 50000, result.FundingPlan[0].CapitalAndSubsidies, 1e-9)
	assert.InDelta(t, 200000, result.FundingPlan[1].CapitalAndSubsidies, 1e-9)
	assert.InDelta(t, 50000, result.FundingPlan[0].CashVariation, 1e-9)
}

func TestCompute_EndToEnd(t *testing.T) {
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(1),
		Activities: singleActivity(),
		Orders:     []domain.Order{{Activity: "consulting", Month: 1, Quantity: 10}},
	})

	require.Len(t, result.Summary, 1)

	pl := result.ProfitAndLoss[0]
	assert.InDelta(t, 1000, pl.Revenue, 1e-9)
	assert.InDelta(t, 1000, pl.EBT, 1e-9)
	assert.InDelta(t, 250, pl.CorporateTax, 1e-9)
	assert.InDelta(t, 750, pl.NetIncome, 1e-9)

	// Customers pay 1200 TTC immediately, tax leaves the same month, the
	// 200 VAT settlement falls past the one-month horizon.
	cf := result.CashFlow[0]
	assert.InDelta(t, 1200, cf.Collections, 1e-9)
	assert.InDelta(t, 250, cf.CorporateTax, 1e-9)
	assert.InDelta(t, 0, cf.VATSettlement, 1e-9)
	assert.InDelta(t, 950, cf.ClosingCash, 1e-9)
	assert.InDelta(t, 950, result.Summary[0].ClosingCash, 1e-9)
}

func TestCompute_BalanceSheetTotalsAreSums(t *testing.T) {
	// The simplified balance sheet reports both sides as computed; the two
	// totals are not forced to match.
	svc := NewProjectionService()
	result := svc.Compute(ProjectionInput{
		Config:     baseConfig(2),
		Activities: singleActivity(),
		Orders:     []domain.Order{{Activity: "consulting", Month: 1, Quantity: 10}},
	})

	for i, a := range result.BalanceSheet.Assets {
		l := result.BalanceSheet.Liabilities[i]
		assert.InDelta(t, a.NetFixedAssets+a.AccountsReceivable+a.Cash, a.TotalAssets, 1e-9)
		assert.InDelta(t, l.Equity+l.FinancialDebt+l.AccountsPayable+l.NetVATPosition, l.TotalLiabilities, 1e-9)
	}
}
