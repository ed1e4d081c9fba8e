package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/backend/internal/calc"
	"github.com/ledgerline/backend/internal/export"
)

// ToolsHandler serves the public financial calculators.
type ToolsHandler struct {
	now func() time.Time
}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{now: time.Now}
}

// money converts a rounded amount to a JSON number.
func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

// writeCalcError maps calculator errors to 422 with a code. Unknown errors
// are treated as server failures.
func writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	var itemErr *calc.ItemError
	switch {
	case errors.As(err, &itemErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": "invalid_item",
			"index": itemErr.Index,
			"field": itemErr.Field,
		})
	case errors.Is(err, calc.ErrInsufficientInput):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_input")
	case errors.Is(err, calc.ErrUnknownBusinessType):
		writeError(w, http.StatusUnprocessableEntity, "unknown_business_type")
	case errors.Is(err, calc.ErrUnknownEmirate):
		writeError(w, http.StatusUnprocessableEntity, "unknown_emirate")
	case errors.Is(err, calc.ErrUnknownAddOn):
		writeError(w, http.StatusUnprocessableEntity, "unknown_add_on")
	case errors.Is(err, calc.ErrUnknownTimeUnit):
		writeError(w, http.StatusUnprocessableEntity, "unknown_time_unit")
	case errors.Is(err, calc.ErrUnknownVATMode):
		writeError(w, http.StatusUnprocessableEntity, "unknown_vat_mode")
	case errors.Is(err, calc.ErrInvalidHorizon):
		writeError(w, http.StatusUnprocessableEntity, "invalid_horizon")
	case errors.Is(err, calc.ErrTooManyEmployees):
		writeError(w, http.StatusUnprocessableEntity, "too_many_employees")
	default:
		writeServiceError(w, r, err, "calculation_failed")
	}
}

// wholeCount truncates v to an int once it is known to lie in [lo, hi].
// IntPart wraps silently on values past int64, so the range check comes first.
func wholeCount(v decimal.Decimal, lo, hi int64) (int, bool) {
	if v.LessThan(decimal.NewFromInt(lo)) || v.GreaterThan(decimal.NewFromInt(hi)) {
		return 0, false
	}
	return int(v.IntPart()), true
}

// --- corporate tax ---

type corporateTaxRequest struct {
	Revenue      calc.Number `json:"revenue"`
	Expenses     calc.Number `json:"expenses"`
	BusinessType string      `json:"businessType"`
}

type corporateTaxResponse struct {
	TaxableIncome float64           `json:"taxable_income"`
	TaxAmount     float64           `json:"tax_amount"`
	NetIncome     float64           `json:"net_income"`
	EffectiveRate float64           `json:"effective_rate"`
	Formatted     map[string]string `json:"formatted"`
}

// CorporateTax handles POST /api/tools/corporate-tax.
func (h *ToolsHandler) CorporateTax(w http.ResponseWriter, r *http.Request) {
	var req corporateTaxRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	jurisdiction := calc.BusinessJurisdiction(req.BusinessType)
	if jurisdiction == "" {
		jurisdiction = calc.Mainland
	}

	res, err := calc.CorporateTax(req.Revenue.OrZero(), req.Expenses.OrZero(), jurisdiction)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, corporateTaxResponse{
		TaxableIncome: money(res.TaxableIncome),
		TaxAmount:     money(res.TaxAmount),
		NetIncome:     money(res.NetIncome),
		EffectiveRate: money(res.EffectiveRate),
		Formatted: map[string]string{
			"taxable_income": calc.FormatAED(res.TaxableIncome),
			"tax_amount":     calc.FormatAED(res.TaxAmount),
			"net_income":     calc.FormatAED(res.NetIncome),
			"effective_rate": calc.FormatPercent(res.EffectiveRate),
		},
	})
}

// --- VAT ---

type vatRequest struct {
	Amount calc.Number `json:"amount"`
	Rate   calc.Number `json:"rate"`
	Mode   string      `json:"mode"`
}

type vatResponse struct {
	Net       float64           `json:"net"`
	VAT       float64           `json:"vat"`
	Gross     float64           `json:"gross"`
	Rate      float64           `json:"rate"`
	Formatted map[string]string `json:"formatted"`
}

// VAT handles POST /api/tools/vat. The rate defaults to the UAE standard rate.
func (h *ToolsHandler) VAT(w http.ResponseWriter, r *http.Request) {
	var req vatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := calc.VAT(req.Amount.OrZero(), req.Rate.OrDefault(calc.UAEStandardVATRate), calc.VATMode(req.Mode))
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vatResponse{
		Net:   money(res.Net),
		VAT:   money(res.VAT),
		Gross: money(res.Gross),
		Rate:  money(res.Rate),
		Formatted: map[string]string{
			"net":   calc.FormatAED(res.Net),
			"vat":   calc.FormatAED(res.VAT),
			"gross": calc.FormatAED(res.Gross),
			"rate":  calc.FormatPercent(res.Rate),
		},
	})
}

// --- cash flow ---

type cashFlowItemDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Amount    calc.Number `json:"amount"`
	Type      string      `json:"type"`
	Frequency string      `json:"frequency"`
}

type cashFlowRequest struct {
	StartingCash calc.Number       `json:"startingCash"`
	Months       calc.Number       `json:"months"`
	Items        []cashFlowItemDTO `json:"items"`
}

type projectionRowDTO struct {
	Month              string  `json:"month"`
	Income             float64 `json:"income"`
	Expenses           float64 `json:"expenses"`
	NetCashFlow        float64 `json:"net_cash_flow"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

type projectionSummaryDTO struct {
	TotalIncome        float64 `json:"total_income"`
	TotalExpenses      float64 `json:"total_expenses"`
	TotalNet           float64 `json:"total_net"`
	StartingCash       float64 `json:"starting_cash"`
	FinalBalance       float64 `json:"final_balance"`
	LowestBalance      float64 `json:"lowest_balance"`
	HasNegativeBalance bool    `json:"has_negative_balance"`
	FirstNegativeMonth string  `json:"first_negative_month,omitempty"`
}

type cashFlowItemView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Frequency string  `json:"frequency"`
}

type cashFlowResponse struct {
	Items      []cashFlowItemView   `json:"items"`
	Projection []projectionRowDTO   `json:"projection"`
	Summary    projectionSummaryDTO `json:"summary"`
	Warning    string               `json:"warning,omitempty"`
	Formatted  map[string]string    `json:"formatted"`
}

const defaultProjectionMonths = 12

// project runs the projector for a decoded request.
func (h *ToolsHandler) project(req cashFlowRequest) ([]calc.CashFlowItem, []calc.MonthlyProjection, calc.ProjectionSummary, error) {
	items := make([]calc.CashFlowItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, calc.CashFlowItem{
			ID:        it.ID,
			Name:      it.Name,
			Amount:    it.Amount.OrZero(),
			Type:      calc.FlowType(it.Type),
			Frequency: calc.Frequency(it.Frequency),
		})
	}
	calc.AssignIDs(items)

	months, ok := wholeCount(req.Months.OrDefault(decimal.NewFromInt(defaultProjectionMonths)), 1, calc.MaxProjectionMonths)
	if !ok {
		return nil, nil, calc.ProjectionSummary{}, calc.ErrInvalidHorizon
	}
	starting := req.StartingCash.OrZero()

	rows, err := calc.Project(starting, items, months, h.now())
	if err != nil {
		return nil, nil, calc.ProjectionSummary{}, err
	}
	return items, rows, calc.Summarize(starting, rows), nil
}

// CashFlow handles POST /api/tools/cash-flow.
func (h *ToolsHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	var req cashFlowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	items, rows, summary, err := h.project(req)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}

	resp := cashFlowResponse{
		Items:      make([]cashFlowItemView, 0, len(items)),
		Projection: make([]projectionRowDTO, 0, len(rows)),
		Summary: projectionSummaryDTO{
			TotalIncome:        money(summary.TotalIncome),
			TotalExpenses:      money(summary.TotalExpenses),
			TotalNet:           money(summary.TotalNet),
			StartingCash:       money(summary.StartingCash),
			FinalBalance:       money(summary.FinalBalance),
			LowestBalance:      money(summary.LowestBalance),
			HasNegativeBalance: summary.HasNegativeBalance,
			FirstNegativeMonth: summary.FirstNegativeMonth,
		},
		Formatted: map[string]string{
			"total_income":   calc.FormatAED(summary.TotalIncome),
			"total_expenses": calc.FormatAED(summary.TotalExpenses),
			"total_net":      calc.FormatAED(summary.TotalNet),
			"final_balance":  calc.FormatAED(summary.FinalBalance),
			"lowest_balance": calc.FormatAED(summary.LowestBalance),
		},
	}
	if summary.HasNegativeBalance {
		resp.Warning = "negative_balance"
	}
	for _, it := range items {
		resp.Items = append(resp.Items, cashFlowItemView{
			ID: it.ID, Name: it.Name, Amount: money(it.Amount),
			Type: string(it.Type), Frequency: string(it.Frequency),
		})
	}
	for _, row := range rows {
		resp.Projection = append(resp.Projection, projectionRowDTO{
			Month:              row.Month,
			Income:             money(row.Income),
			Expenses:           money(row.Expenses),
			NetCashFlow:        money(row.NetCashFlow),
			CumulativeCashFlow: money(row.CumulativeCashFlow),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CashFlowExport handles POST /api/tools/cash-flow/export?format=csv|xlsx|pdf.
func (h *ToolsHandler) CashFlowExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported_format")
		return
	}
	var req cashFlowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	_, rows, summary, err := h.project(req)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}

	var body []byte
	switch format {
	case export.FormatXLSX:
		body, err = export.ProjectionXLSX(rows, summary)
	case export.FormatPDF:
		body, err = export.ProjectionPDF("Cash Flow Projection", rows, summary, h.now())
	default:
		var buf bytes.Buffer
		err = export.ProjectionCSV(&buf, rows)
		body = buf.Bytes()
	}
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("export %s: %w", format, err), "export_failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cash-flow-projection."+string(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// --- setup cost ---

type setupCostRequest struct {
	BusinessType string      `json:"businessType"`
	Emirate      string      `json:"emirate"`
	Employees    calc.Number `json:"employees"`
	OfficeSqft   calc.Number `json:"officeSqft"`
	AddOns       []string    `json:"selectedAddOns"`
}

type setupCostResponse struct {
	LicenseAndRegistration float64           `json:"license_and_registration"`
	VisaAndLabor           float64           `json:"visa_and_labor"`
	OfficeSetup            float64           `json:"office_setup"`
	Additional             float64           `json:"additional_services"`
	Total                  float64           `json:"total"`
	Formatted              map[string]string `json:"formatted"`
}

// SetupCost handles POST /api/tools/setup-cost.
func (h *ToolsHandler) SetupCost(w http.ResponseWriter, r *http.Request) {
	var req setupCostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	headcount := req.Employees.OrZero()
	if headcount.IsNegative() {
		headcount = decimal.Zero
	}
	employees, ok := wholeCount(headcount, 0, calc.MaxEmployees)
	if !ok {
		writeCalcError(w, r, calc.ErrTooManyEmployees)
		return
	}

	res, err := calc.SetupCost(calc.SetupCostInput{
		CompanyType: calc.CompanyType(req.BusinessType),
		Emirate:     req.Emirate,
		Employees:   employees,
		OfficeSqft:  req.OfficeSqft.OrZero(),
		AddOns:      req.AddOns,
	})
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setupCostResponse{
		LicenseAndRegistration: money(res.LicenseAndRegistration),
		VisaAndLabor:           money(res.VisaAndLabor),
		OfficeSetup:            money(res.OfficeSetup),
		Additional:             money(res.Additional),
		Total:                  money(res.Total),
		Formatted: map[string]string{
			"license_and_registration": calc.FormatAED(res.LicenseAndRegistration),
			"visa_and_labor":           calc.FormatAED(res.VisaAndLabor),
			"office_setup":             calc.FormatAED(res.OfficeSetup),
			"additional_services":      calc.FormatAED(res.Additional),
			"total":                    calc.FormatAED(res.Total),
		},
	})
}

type catalogEntryDTO struct {
	Key   string  `json:"key"`
	Dubai float64 `json:"dubai"`
	Other float64 `json:"other"`
}

type catalogResponse struct {
	CompanyTypes []catalogEntryDTO `json:"company_types"`
	Emirates     []string          `json:"emirates"`
	AddOns       []catalogEntryDTO `json:"additional_services"`
}

func catalogEntries(in []calc.CatalogEntry) []catalogEntryDTO {
	out := make([]catalogEntryDTO, 0, len(in))
	for _, e := range in {
		out = append(out, catalogEntryDTO{Key: e.Key, Dubai: money(e.Dubai), Other: money(e.Other)})
	}
	return out
}

// SetupCostCatalog handles GET /api/tools/setup-cost/catalog.
func (h *ToolsHandler) SetupCostCatalog(w http.ResponseWriter, r *http.Request) {
	c := calc.SetupCostCatalog()
	writeJSON(w, http.StatusOK, catalogResponse{
		CompanyTypes: catalogEntries(c.CompanyTypes),
		Emirates:     c.Emirates,
		AddOns:       catalogEntries(c.AddOns),
	})
}

// --- ROI ---

type roiRequest struct {
	InitialInvestment calc.Number `json:"initialInvestment"`
	FinalValue        calc.Number `json:"finalValue"`
	TimeHorizon       calc.Number `json:"timeHorizon"`
	TimeUnit          string      `json:"timeUnit"`
	AdditionalCosts   calc.Number `json:"additionalCosts"`
	AnnualCashFlow    calc.Number `json:"annualCashFlow"`
}

type roiResponse struct {
	TotalInvestment      float64           `json:"total_investment"`
	TotalReturn          float64           `json:"total_return"`
	TotalGain            float64           `json:"total_gain"`
	SimpleROI            float64           `json:"simple_roi"`
	AnnualizedROI        *float64          `json:"annualized_roi"`
	AnnualizedApplicable bool              `json:"annualized_applicable"`
	PaybackPeriod        float64           `json:"payback_period"`
	BreakEvenPoint       float64           `json:"break_even_point"`
	Rating               string            `json:"rating"`
	Formatted            map[string]string `json:"formatted"`
}

// ROI handles POST /api/tools/roi.
func (h *ToolsHandler) ROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := calc.ROI(calc.ROIInput{
		InitialInvestment: req.InitialInvestment.OrZero(),
		FinalValue:        req.FinalValue.OrZero(),
		TimeHorizon:       req.TimeHorizon.OrZero(),
		TimeUnit:          calc.TimeUnit(req.TimeUnit),
		AdditionalCosts:   req.AdditionalCosts.OrZero(),
		AnnualCashFlow:    req.AnnualCashFlow.OrZero(),
	})
	if err != nil {
		writeCalcError(w, r, err)
		return
	}

	resp := roiResponse{
		TotalInvestment:      money(res.TotalInvestment),
		TotalReturn:          money(res.TotalReturn),
		TotalGain:            money(res.TotalGain),
		SimpleROI:            money(res.SimpleROI),
		AnnualizedApplicable: res.AnnualizedApplicable,
		PaybackPeriod:        money(res.PaybackPeriod),
		BreakEvenPoint:       money(res.BreakEvenPoint),
		Rating:               calc.Rating(res.SimpleROI),
		Formatted: map[string]string{
			"total_investment": calc.FormatAED(res.TotalInvestment),
			"total_return":     calc.FormatAED(res.TotalReturn),
			"total_gain":       calc.FormatAED(res.TotalGain),
			"simple_roi":       calc.FormatPercent(res.SimpleROI),
			"annualized_roi":   "N/A",
		},
	}
	if res.AnnualizedROI != nil {
		a := money(*res.AnnualizedROI)
		resp.AnnualizedROI = &a
		resp.Formatted["annualized_roi"] = calc.FormatPercent(*res.AnnualizedROI)
	}
	writeJSON(w, http.StatusOK, resp)
}
