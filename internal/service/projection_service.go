package service

import (
	"math"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/util"
)

// ProjectionInput is one scenario snapshot handed to the engine. The engine
// never mutates it; collections may be nil.
type ProjectionInput struct {
	Config            domain.ProjectionConfig
	Activities        []domain.Activity
	Orders            []domain.Order
	Personnel         []domain.PersonnelLine
	Charges           []domain.ExternalCharge
	Investments       []domain.Investment
	Loans             []domain.Loan
	CapitalInjections []domain.CapitalInjection
	Subsidies         []domain.Subsidy
	// SubscriptionOrders is the subscription subset of Orders, tracked as a
	// separate recurring-revenue series for reporting only.
	SubscriptionOrders []domain.Order
}

// SummaryRow is one month of the headline view.
type SummaryRow struct {
	Month       int     `json:"month"`
	Revenue     float64 `json:"revenue"`
	MRR         float64 `json:"mrr"`
	GrossMargin float64 `json:"grossMargin"`
	EBITDA      float64 `json:"ebitda"`
	EBIT        float64 `json:"ebit"`
	NetIncome   float64 `json:"netIncome"`
	ClosingCash float64 `json:"closingCash"`
}

// ProfitAndLossRow is one month of the P&L statement. All amounts exclude VAT.
type ProfitAndLossRow struct {
	Month           int     `json:"month"`
	Revenue         float64 `json:"revenue"`
	VariableCosts   float64 `json:"variableCosts"`
	GrossMargin     float64 `json:"grossMargin"`
	ExternalCharges float64 `json:"externalCharges"`
	Personnel       float64 `json:"personnel"`
	EBITDA          float64 `json:"ebitda"`
	Depreciation    float64 `json:"depreciation"`
	EBIT            float64 `json:"ebit"`
	LoanInterest    float64 `json:"loanInterest"`
	EBT             float64 `json:"ebt"`
	CorporateTax    float64 `json:"corporateTax"`
	NetIncome       float64 `json:"netIncome"`
}

// CashFlowRow is one month of the cash statement. Collections and supplier
// payments are VAT-inclusive and already carry the DSO/DPO shift. The
// operating/investing/financing split is a reporting view; the closing cash
// rolls forward from the detailed inflow/outflow ledger.
type CashFlowRow struct {
	Month       int     `json:"month"`
	OpeningCash float64 `json:"openingCash"`

	Collections       float64 `json:"collections"`
	LoanDrawdowns     float64 `json:"loanDrawdowns"`
	CapitalInjections float64 `json:"capitalInjections"`
	Subsidies         float64 `json:"subsidies"`
	TotalInflows      float64 `json:"totalInflows"`

	SupplierPayments float64 `json:"supplierPayments"`
	PayrollPayments  float64 `json:"payrollPayments"`
	CapexPayments    float64 `json:"capexPayments"`
	LoanPayments     float64 `json:"loanPayments"`
	VATSettlement    float64 `json:"vatSettlement"`
	CorporateTax     float64 `json:"corporateTax"`
	TotalOutflows    float64 `json:"totalOutflows"`

	OperatingFlow float64 `json:"operatingFlow"`
	InvestingFlow float64 `json:"investingFlow"`
	FinancingFlow float64 `json:"financingFlow"`

	NetFlow     float64 `json:"netFlow"`
	ClosingCash float64 `json:"closingCash"`
}

// FundingPlanRow is one calendar year of financing sources and uses.
type FundingPlanRow struct {
	Year                int     `json:"year"`
	Inflows             float64 `json:"inflows"`
	Outflows            float64 `json:"outflows"`
	Investments         float64 `json:"investments"`
	LoanDrawdowns       float64 `json:"loanDrawdowns"`
	LoanRepayments      float64 `json:"loanRepayments"`
	CapitalAndSubsidies float64 `json:"capitalAndSubsidies"`
	CashVariation       float64 `json:"cashVariation"`
}

// AssetsRow is one month of the asset side of the simplified balance sheet.
type AssetsRow struct {
	Month              int     `json:"month"`
	NetFixedAssets     float64 `json:"netFixedAssets"`
	AccountsReceivable float64 `json:"accountsReceivable"`
	Cash               float64 `json:"cash"`
	TotalAssets        float64 `json:"totalAssets"`
}

// LiabilitiesRow is one month of the liabilities-and-equity side. The two
// sides are not guaranteed to balance; see BalanceSheet.
type LiabilitiesRow struct {
	Month            int     `json:"month"`
	Equity           float64 `json:"equity"`
	FinancialDebt    float64 `json:"financialDebt"`
	AccountsPayable  float64 `json:"accountsPayable"`
	NetVATPosition   float64 `json:"netVatPosition"`
	TotalLiabilities float64 `json:"totalLiabilities"`
}

// BalanceSheet is the simplified monthly balance sheet. The model is an
// approximation: total assets and total liabilities are reported as
// computed and the accounting identity assets = liabilities + equity is
// NOT enforced.
type BalanceSheet struct {
	Assets      []AssetsRow      `json:"assets"`
	Liabilities []LiabilitiesRow `json:"liabilities"`
}

// ProjectionResult bundles every derived statement for one run.
type ProjectionResult struct {
	Summary       []SummaryRow       `json:"summary"`
	ProfitAndLoss []ProfitAndLossRow `json:"profitAndLoss"`
	CashFlow      []CashFlowRow      `json:"cashFlow"`
	FundingPlan   []FundingPlanRow   `json:"fundingPlan"`
	BalanceSheet  BalanceSheet       `json:"balanceSheet"`
}

// ProjectionService computes projections. It is stateless and safe for
// concurrent use; each Compute call is independent.
type ProjectionService struct{}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService() *ProjectionService {
	return &ProjectionService{}
}

// Compute runs the projection over the configured horizon and derives the
// summary, P&L, cash flow, annual funding plan and balance sheet.
//
// The engine is deliberately permissive with malformed records: orders into
// unknown activities or months outside the horizon, inverted date windows
// and degenerate loans all contribute zero instead of failing the run.
// A horizon of zero months returns a well-formed empty result.
func (s *ProjectionService) Compute(in ProjectionInput) *ProjectionResult {
	cfg := in.Config
	n := cfg.Months
	if n <= 0 {
		return &ProjectionResult{
			Summary:       []SummaryRow{},
			ProfitAndLoss: []ProfitAndLossRow{},
			CashFlow:      []CashFlowRow{},
			FundingPlan:   []FundingPlanRow{},
			BalanceSheet:  BalanceSheet{Assets: []AssetsRow{}, Liabilities: []LiabilitiesRow{}},
		}
	}

	// All series are 1-based over [1, n]; index 0 is unused.
	activities := domain.ActivityMap(in.Activities)

	revenue := newSeries(n)
	revenueVAT := newSeries(n)
	variableCosts := newSeries(n)

	for _, o := range in.Orders {
		a, ok := activities[o.Activity]
		if !ok || o.Month < 1 || o.Month > n {
			continue
		}
		price := a.UnitPrice.InexactFloat64()
		rev := o.Quantity * price
		revenue[o.Month] += rev
		revenueVAT[o.Month] += rev * vatRate(a.VATRate, cfg.DefaultVATRate)
		variableCosts[o.Month] += o.Quantity*a.VariableCostPerUnit.InexactFloat64() + rev*a.VariableCostRate
	}

	// Recurring revenue is reporting-only: it never feeds cash or tax.
	mrr := newSeries(n)
	for _, o := range in.SubscriptionOrders {
		a, ok := activities[o.Activity]
		if !ok || o.Month < 1 || o.Month > n {
			continue
		}
		mrr[o.Month] += o.Quantity * a.UnitPrice.InexactFloat64()
	}

	personnel := newSeries(n)
	for i := range in.Personnel {
		p := &in.Personnel[i]
		start, end := clampWindow(p.StartMonth, p.EndMonth, n)
		if end < start || p.Headcount() < 0 {
			continue
		}
		monthly := p.MonthlySalary.InexactFloat64() * (1 + p.EmployerCostRate) * float64(p.Headcount())
		for m := start; m <= end; m++ {
			personnel[m] += monthly
		}
	}

	externalCharges := newSeries(n)
	externalChargesVAT := newSeries(n)
	for i := range in.Charges {
		c := &in.Charges[i]
		start, end := clampWindow(c.StartMonth, c.EndMonth, n)
		if end < start {
			continue
		}
		amount := c.MonthlyAmount.InexactFloat64()
		vat := amount * vatRate(c.VATRate, cfg.DefaultVATRate)
		for m := start; m <= end; m++ {
			externalCharges[m] += amount
			externalChargesVAT[m] += vat
		}
	}

	depreciation := newSeries(n)
	capex := newSeries(n)
	capexVAT := newSeries(n)
	for i := range in.Investments {
		inv := &in.Investments[i]
		m := inv.PurchaseMonth
		if m < 1 || m > n {
			continue
		}
		amount := inv.Amount.InexactFloat64()
		capex[m] += amount
		capexVAT[m] += amount * vatRate(inv.VATRate, cfg.DefaultVATRate)

		amortMonths := inv.AmortYears * 12
		if amortMonths < 1 {
			amortMonths = 1
		}
		monthly := amount / float64(amortMonths)
		end := m + amortMonths - 1
		if end > n {
			end = n
		}
		for k := m; k <= end; k++ {
			depreciation[k] += monthly
		}
	}

	loanInterest := newSeries(n)
	loanPrincipal := newSeries(n)
	loanDrawdowns := newSeries(n)
	loanBalance := newSeries(n)
	for i := range in.Loans {
		ln := &in.Loans[i]
		principal := ln.Principal.InexactFloat64()
		if principal <= 0 || ln.Months <= 0 {
			continue
		}
		if ln.StartMonth >= 1 && ln.StartMonth <= n {
			loanDrawdowns[ln.StartMonth] += principal
		}
		schedule := AmortizeAnnuity(principal, ln.AnnualRate, ln.Months)
		for k := 0; k < ln.Months; k++ {
			m := ln.StartMonth + k
			if m < 1 || m > n {
				continue
			}
			loanInterest[m] += schedule.Interest[k]
			loanPrincipal[m] += schedule.Principal[k]
			loanBalance[m] += schedule.Balance[k]
		}
	}

	// Cash timing: customers pay revenue TTC with the DSO shift, suppliers
	// are paid variable costs and external charges TTC with the DPO shift.
	// Shifted amounts beyond the horizon are dropped, not carried.
	dsoShift := util.DaysToMonthShift(cfg.DSODays)
	dpoShift := util.DaysToMonthShift(cfg.DPODays)

	variableCostsVAT := newSeries(n)
	for m := 1; m <= n; m++ {
		variableCostsVAT[m] = variableCosts[m] * cfg.DefaultVATRate
	}

	collections := newSeries(n)
	supplierPayments := newSeries(n)
	for m := 1; m <= n; m++ {
		if sm := m + dsoShift; sm <= n {
			collections[sm] += revenue[m] + revenueVAT[m]
		}
		if sm := m + dpoShift; sm <= n {
			supplierPayments[sm] += variableCosts[m] + variableCostsVAT[m] + externalCharges[m] + externalChargesVAT[m]
		}
	}

	capitalIn := newSeries(n)
	for i := range in.CapitalInjections {
		if m := in.CapitalInjections[i].Month; m >= 1 && m <= n {
			capitalIn[m] += in.CapitalInjections[i].Amount.InexactFloat64()
		}
	}
	subsidiesIn := newSeries(n)
	for i := range in.Subsidies {
		if m := in.Subsidies[i].Month; m >= 1 && m <= n {
			subsidiesIn[m] += in.Subsidies[i].Amount.InexactFloat64()
		}
	}

	// Net VAT of month m settles in month m+1; a negative position acts as
	// a credit. The settlement of the final month falls past the horizon
	// and is simply not recorded.
	netVAT := newSeries(n)
	vatSettlement := newSeries(n)
	for m := 1; m <= n; m++ {
		netVAT[m] = revenueVAT[m] - (externalChargesVAT[m] + capexVAT[m] + variableCostsVAT[m])
		if m+1 <= n {
			vatSettlement[m+1] += netVAT[m]
		}
	}

	// P&L chain. Losses generate no tax credit.
	grossMargin := newSeries(n)
	ebitda := newSeries(n)
	ebit := newSeries(n)
	ebt := newSeries(n)
	corporateTax := newSeries(n)
	netIncome := newSeries(n)
	for m := 1; m <= n; m++ {
		grossMargin[m] = revenue[m] - variableCosts[m]
		ebitda[m] = grossMargin[m] - personnel[m] - externalCharges[m]
		ebit[m] = ebitda[m] - depreciation[m]
		ebt[m] = ebit[m] - loanInterest[m]
		if ebt[m] > 0 {
			corporateTax[m] = ebt[m] * cfg.CorporateTaxRate
		}
		netIncome[m] = ebt[m] - corporateTax[m]
	}

	// Cash ledger. Corporate tax is paid in its accrual month.
	inflows := newSeries(n)
	outflows := newSeries(n)
	openingCash := newSeries(n)
	closingCash := newSeries(n)
	for m := 1; m <= n; m++ {
		inflows[m] = collections[m] + loanDrawdowns[m] + capitalIn[m] + subsidiesIn[m]
		outflows[m] = supplierPayments[m] + personnel[m] + capex[m] + capexVAT[m] +
			loanPrincipal[m] + loanInterest[m] + vatSettlement[m] + corporateTax[m]
		if m == 1 {
			openingCash[m] = cfg.InitialCash.InexactFloat64()
		} else {
			openingCash[m] = closingCash[m-1]
		}
		closingCash[m] = openingCash[m] + inflows[m] - outflows[m]
	}

	result := &ProjectionResult{
		Summary:       make([]SummaryRow, 0, n),
		ProfitAndLoss: make([]ProfitAndLossRow, 0, n),
		CashFlow:      make([]CashFlowRow, 0, n),
		BalanceSheet: BalanceSheet{
			Assets:      make([]AssetsRow, 0, n),
			Liabilities: make([]LiabilitiesRow, 0, n),
		},
	}

	var (
		cumRevenueTTC  float64
		cumCollections float64
		cumPurchases   float64
		cumSuppliers   float64
		cumCapex       float64
		cumDepr        float64
		cumNetIncome   float64
		cumCapital     float64
		cumNetVAT      float64
		cumSettledVAT  float64
	)

	for m := 1; m <= n; m++ {
		result.Summary = append(result.Summary, SummaryRow{
			Month:       m,
			Revenue:     revenue[m],
			MRR:         mrr[m],
			GrossMargin: grossMargin[m],
			EBITDA:      ebitda[m],
			EBIT:        ebit[m],
			NetIncome:   netIncome[m],
			ClosingCash: closingCash[m],
		})

		result.ProfitAndLoss = append(result.ProfitAndLoss, ProfitAndLossRow{
			Month:           m,
			Revenue:         revenue[m],
			VariableCosts:   variableCosts[m],
			GrossMargin:     grossMargin[m],
			ExternalCharges: externalCharges[m],
			Personnel:       personnel[m],
			EBITDA:          ebitda[m],
			Depreciation:    depreciation[m],
			EBIT:            ebit[m],
			LoanInterest:    loanInterest[m],
			EBT:             ebt[m],
			CorporateTax:    corporateTax[m],
			NetIncome:       netIncome[m],
		})

		result.CashFlow = append(result.CashFlow, CashFlowRow{
			Month:             m,
			OpeningCash:       openingCash[m],
			Collections:       collections[m],
			LoanDrawdowns:     loanDrawdowns[m],
			CapitalInjections: capitalIn[m],
			Subsidies:         subsidiesIn[m],
			TotalInflows:      inflows[m],
			SupplierPayments:  supplierPayments[m],
			PayrollPayments:   personnel[m],
			CapexPayments:     capex[m] + capexVAT[m],
			LoanPayments:      loanPrincipal[m] + loanInterest[m],
			VATSettlement:     vatSettlement[m],
			CorporateTax:      corporateTax[m],
			TotalOutflows:     outflows[m],
			OperatingFlow:     ebitda[m] - corporateTax[m],
			InvestingFlow:     -(capex[m] + capexVAT[m]),
			FinancingFlow:     loanDrawdowns[m] + capitalIn[m] + subsidiesIn[m] - (loanPrincipal[m] + loanInterest[m]),
			NetFlow:           inflows[m] - outflows[m],
			ClosingCash:       closingCash[m],
		})

		cumRevenueTTC += revenue[m] + revenueVAT[m]
		cumCollections += collections[m]
		cumPurchases += variableCosts[m] + variableCostsVAT[m] + externalCharges[m] + externalChargesVAT[m]
		cumSuppliers += supplierPayments[m]
		cumCapex += capex[m]
		cumDepr += depreciation[m]
		cumNetIncome += netIncome[m]
		cumCapital += capitalIn[m]
		cumNetVAT += netVAT[m]
		cumSettledVAT += vatSettlement[m]

		assets := AssetsRow{
			Month:              m,
			NetFixedAssets:     math.Max(0, cumCapex-cumDepr),
			AccountsReceivable: math.Max(0, cumRevenueTTC-cumCollections),
			Cash:               closingCash[m],
		}
		assets.TotalAssets = assets.NetFixedAssets + assets.AccountsReceivable + assets.Cash
		result.BalanceSheet.Assets = append(result.BalanceSheet.Assets, assets)

		liabilities := LiabilitiesRow{
			Month:           m,
			Equity:          cumNetIncome + cumCapital,
			FinancialDebt:   loanBalance[m],
			AccountsPayable: math.Max(0, cumPurchases-cumSuppliers),
			NetVATPosition:  cumNetVAT - cumSettledVAT,
		}
		liabilities.TotalLiabilities = liabilities.Equity + liabilities.FinancialDebt +
			liabilities.AccountsPayable + liabilities.NetVATPosition
		result.BalanceSheet.Liabilities = append(result.BalanceSheet.Liabilities, liabilities)
	}

	result.FundingPlan = s.fundingPlan(cfg, n, inflows, outflows, capex, capexVAT,
		loanDrawdowns, loanPrincipal, loanInterest, capitalIn, subsidiesIn)

	return result
}

// fundingPlan groups the monthly financing series by calendar year.
func (s *ProjectionService) fundingPlan(cfg domain.ProjectionConfig, n int,
	inflows, outflows, capex, capexVAT, loanDrawdowns, loanPrincipal, loanInterest, capitalIn, subsidiesIn []float64,
) []FundingPlanRow {
	byYear := make(map[int]*FundingPlanRow)
	years := make([]int, 0, n/12+1)
	for m := 1; m <= n; m++ {
		year := util.CalendarYear(cfg.StartYear, cfg.StartMonth, m)
		row, ok := byYear[year]
		if !ok {
			row = &FundingPlanRow{Year: year}
			byYear[year] = row
			years = append(years, year)
		}
		row.Inflows += inflows[m]
		row.Outflows += outflows[m]
		row.Investments += capex[m] + capexVAT[m]
		row.LoanDrawdowns += loanDrawdowns[m]
		row.LoanRepayments += loanPrincipal[m] + loanInterest[m]
		row.CapitalAndSubsidies += capitalIn[m] + subsidiesIn[m]
	}

	plan := make([]FundingPlanRow, 0, len(years))
	for _, year := range years {
		row := byYear[year]
		row.CashVariation = row.Inflows - row.Outflows
		plan = append(plan, *row)
	}
	return plan
}

// newSeries allocates a 1-based monthly series; index 0 is unused.
func newSeries(n int) []float64 {
	return make([]float64, n+1)
}

func clampWindow(start, end, n int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end > n {
		end = n
	}
	return start, end
}

func vatRate(rate *float64, fallback float64) float64 {
	if rate != nil {
		return *rate
	}
	return fallback
}
