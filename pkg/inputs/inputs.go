package inputs

import (
	"fmt"
	"strings"

	"github.com/iwvelando/financing-simulator/pkg/constants"
)

// AmortizationType tags how principal is repaid.
type AmortizationType string

const (
	// AmortizationSAC is the constant-amortization system.
	AmortizationSAC AmortizationType = "SAC"
	// AmortizationPRICE is the French (constant installment) system.
	AmortizationPRICE AmortizationType = "PRICE"
	// AmortizationBullet repays all principal in the final month.
	AmortizationBullet AmortizationType = "BULLET"
)

// ParseAmortizationType normalizes a tag. An empty tag means bullet.
func ParseAmortizationType(s string) (AmortizationType, error) {
	switch t := AmortizationType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return AmortizationBullet, nil
	case AmortizationSAC, AmortizationPRICE, AmortizationBullet:
		return t, nil
	default:
		return t, fmt.Errorf("unknown amortization type %q", s)
	}
}

// Event is a one-time posting at a month index: a principal tranche or a
// structuring-fee installment.
type Event struct {
	Month  Value `json:"month"`
	Amount Value `json:"amount"`
}

// CostItem is an additional project cost, optionally financed.
type CostItem struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	Amount     Value  `json:"amount"`
	IsFinanced bool   `json:"is_financed"`
}

// CostItemDefinition is an entry of the fixed cost catalogue.
type CostItemDefinition struct {
	Code  string
	Label string
}

// FixedCostItemDefinitions lists the cost items every simulation carries.
var FixedCostItemDefinitions = []CostItemDefinition{
	{Code: "EVAL_PROJECT", Label: "Avaliação do projeto"},
	{Code: "EVAL_COMMERCIAL", Label: "Avaliação comercial"},
	{Code: "INS_RCC", Label: "Seguro RCC"},
	{Code: "INS_PERFORMANCE", Label: "Seguro Performance"},
	{Code: "REGISTRY", Label: "Registro de imóveis"},
	{Code: "INS_MIP", Label: "Seguro MIP"},
}

// Inputs holds everything a financing simulation is computed from.
type Inputs struct {
	AmortizationType AmortizationType `json:"amortization_type"`

	BudgetTotal            Value `json:"budget_total"`
	ValueToIncur           Value `json:"value_to_incur"`
	FinancedValue          Value `json:"financed_value"`
	FinancedExpensesAmount Value `json:"financed_expenses_amount"`
	GuaranteeValue         Value `json:"guarantee_value"`
	GuaranteePct           Value `json:"guarantee_pct"`

	ConstructionMonths Value `json:"construction_months"`
	GraceMonths        Value `json:"grace_months"`

	FixedRateAM     Value  `json:"fixed_rate_am"`
	InsurancePct    Value  `json:"insurance_pct"`
	CorrectionLabel string `json:"correction_label"`

	StructuringFeePct               Value   `json:"structuring_fee_pct"`
	StructuringFeeInstallmentsCount Value   `json:"structuring_fee_installments_count"`
	StructuringFeeInstallments      []Event `json:"structuring_fee_installments"`

	ManagementFeeMonths      Value   `json:"management_fee_months"`
	ManagementFeeIsFixed     bool    `json:"management_fee_is_fixed"`
	ManagementFeeFixedAmount Value   `json:"management_fee_fixed_amount"`
	ManagementFeeValues      []Value `json:"management_fee_values"`

	FinancedIsParceled bool    `json:"financed_is_parceled"`
	FinancedTranches   []Event `json:"financed_tranches"`

	CostItems []CostItem `json:"cost_items"`
}

// Default returns the inputs of a freshly created simulation.
func Default() *Inputs {
	return &Inputs{
		AmortizationType:           AmortizationBullet,
		GraceMonths:                Of(constants.DefaultGraceMonths),
		FixedRateAM:                Of(constants.DefaultFixedRateAM),
		CorrectionLabel:            constants.DefaultCorrectionLabel,
		StructuringFeePct:          Of(constants.DefaultStructuringFeePct),
		StructuringFeeInstallments: []Event{},
		ManagementFeeValues:        []Value{},
		FinancedTranches:           []Event{},
		CostItems:                  SeedCostItems(nil),
	}
}

// TermMonths is construction plus grace, or empty when either is missing.
func (in *Inputs) TermMonths() Value {
	if !in.ConstructionMonths.IsProvided() || !in.GraceMonths.IsProvided() {
		return Empty()
	}
	return Of(in.ConstructionMonths.OrZero() + in.GraceMonths.OrZero())
}

// Clone returns a deep copy.
func (in *Inputs) Clone() *Inputs {
	if in == nil {
		return nil
	}
	out := *in
	out.StructuringFeeInstallments = copySlice(in.StructuringFeeInstallments)
	out.ManagementFeeValues = copySlice(in.ManagementFeeValues)
	out.FinancedTranches = copySlice(in.FinancedTranches)
	out.CostItems = copySlice(in.CostItems)
	return &out
}

func copySlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// SeedCostItems returns one entry per catalogue definition, in catalogue
// order, taking amount and financed flag from items with a matching code.
func SeedCostItems(items []CostItem) []CostItem {
	byCode := make(map[string]CostItem, len(items))
	for _, item := range items {
		byCode[item.Code] = item
	}

	seeded := make([]CostItem, 0, len(FixedCostItemDefinitions))
	for _, definition := range FixedCostItemDefinitions {
		existing := byCode[definition.Code]
		seeded = append(seeded, CostItem{
			Code:       definition.Code,
			Label:      definition.Label,
			Amount:     existing.Amount,
			IsFinanced: existing.IsFinanced,
		})
	}
	return seeded
}

// NormalizeCorrectionLabel maps legacy spellings to the current label.
func NormalizeCorrectionLabel(label string) string {
	if label == constants.LegacyCorrectionLabel {
		return constants.DefaultCorrectionLabel
	}
	return label
}
