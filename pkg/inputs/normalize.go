package inputs

import (
	"math"
	"strings"

	"github.com/iwvelando/financing-simulator/pkg/constants"
)

// ToCount converts a count field to a non-negative truncated integer. Empty
// and negative values count as 0.
func ToCount(v Value) int {
	if !v.IsProvided() {
		return 0
	}
	n := math.Trunc(v.OrZero())
	if n <= 0 {
		return 0
	}
	if n > constants.MaxTermMonths {
		return constants.MaxTermMonths
	}
	return int(n)
}

// EnsureArrayLength returns a new slice of exactly count entries, keeping
// items by position and padding with the empty (zero) value.
func EnsureArrayLength[T any](items []T, count int) []T {
	if count < 0 {
		count = 0
	}
	out := make([]T, count)
	copy(out, items)
	return out
}

// Hydrate builds Inputs from a loosely-typed record such as a decoded JSON
// document or a YAML configuration section. Missing or unreadable fields
// fall back to Default values. The returned Inputs always satisfy the
// count/array invariants.
func Hydrate(raw map[string]interface{}) *Inputs {
	in := Default()
	if raw == nil {
		return in
	}

	if s, ok := raw["amortization_type"].(string); ok {
		// Unknown tags are kept so the builder can reject them.
		in.AmortizationType, _ = ParseAmortizationType(s)
	}

	in.BudgetTotal = numberField(raw, "budget_total", in.BudgetTotal)
	in.ValueToIncur = numberField(raw, "value_to_incur", in.ValueToIncur)
	in.FinancedValue = numberField(raw, "financed_value", in.FinancedValue)
	in.FinancedExpensesAmount = numberField(raw, "financed_expenses_amount", in.FinancedExpensesAmount)
	in.GuaranteeValue = numberField(raw, "guarantee_value", in.GuaranteeValue)
	in.GuaranteePct = numberField(raw, "guarantee_pct", in.GuaranteePct)
	in.ConstructionMonths = numberField(raw, "construction_months", in.ConstructionMonths)
	in.GraceMonths = numberField(raw, "grace_months", in.GraceMonths)
	in.FixedRateAM = numberField(raw, "fixed_rate_am", in.FixedRateAM)
	in.InsurancePct = numberField(raw, "insurance_pct", in.InsurancePct)
	in.CorrectionLabel = NormalizeCorrectionLabel(stringField(raw, "correction_label", in.CorrectionLabel))
	in.StructuringFeePct = numberField(raw, "structuring_fee_pct", in.StructuringFeePct)

	in.StructuringFeeInstallments = eventsField(raw, "structuring_fee_installments")
	in.StructuringFeeInstallmentsCount = countField(raw, "structuring_fee_installments_count", len(in.StructuringFeeInstallments))
	in.StructuringFeeInstallments = EnsureArrayLength(in.StructuringFeeInstallments, ToCount(in.StructuringFeeInstallmentsCount))

	in.ManagementFeeIsFixed = boolField(raw, "management_fee_is_fixed", in.ManagementFeeIsFixed)
	in.ManagementFeeFixedAmount = numberField(raw, "management_fee_fixed_amount", in.ManagementFeeFixedAmount)
	in.ManagementFeeValues = valuesField(raw, "management_fee_values")
	in.ManagementFeeMonths = countField(raw, "management_fee_months", len(in.ManagementFeeValues))
	in.ManagementFeeValues = EnsureArrayLength(in.ManagementFeeValues, ToCount(in.ManagementFeeMonths))
	if in.ManagementFeeIsFixed {
		// Fixed mode overrides whatever per-month values were saved.
		in.syncManagementFeeValues()
	}

	in.FinancedIsParceled = boolField(raw, "financed_is_parceled", in.FinancedIsParceled)
	in.FinancedTranches = eventsField(raw, "financed_tranches")

	in.CostItems = SeedCostItems(costItemsField(raw, "cost_items"))

	return in
}

// Normalized returns the shape persisted for a simulation: array lengths
// follow their count fields and cost items that carry no information are
// dropped.
func (in *Inputs) Normalized() *Inputs {
	out := in.Clone()
	if out.AmortizationType == "" {
		out.AmortizationType = AmortizationBullet
	}
	out.StructuringFeeInstallments = EnsureArrayLength(out.StructuringFeeInstallments, ToCount(out.StructuringFeeInstallmentsCount))
	out.ManagementFeeValues = EnsureArrayLength(out.ManagementFeeValues, ToCount(out.ManagementFeeMonths))

	items := make([]CostItem, 0, len(out.CostItems))
	for _, item := range SeedCostItems(out.CostItems) {
		if !item.Amount.IsProvided() && !item.IsFinanced {
			continue
		}
		items = append(items, item)
	}
	out.CostItems = items
	return out
}

func numberField(raw map[string]interface{}, key string, fallback Value) Value {
	value, ok := ValueFromInterface(raw[key])
	if !ok {
		return fallback
	}
	return value
}

// countField reads a count, deriving it from the backing array length when
// the record does not carry one.
func countField(raw map[string]interface{}, key string, derived int) Value {
	value, ok := ValueFromInterface(raw[key])
	if !ok {
		return Of(float64(derived))
	}
	return value
}

func boolField(raw map[string]interface{}, key string, fallback bool) bool {
	if b, ok := raw[key].(bool); ok {
		return b
	}
	return fallback
}

func stringField(raw map[string]interface{}, key string, fallback string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return fallback
}

func listField(raw map[string]interface{}, key string) []interface{} {
	switch list := raw[key].(type) {
	case []interface{}:
		return list
	case []map[string]interface{}:
		out := make([]interface{}, len(list))
		for i := range list {
			out[i] = list[i]
		}
		return out
	}
	return nil
}

// recordOf accepts the map shapes produced by encoding/json, yaml.v3 and viper.
func recordOf(item interface{}) (map[string]interface{}, bool) {
	switch record := item.(type) {
	case map[string]interface{}:
		return record, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(record))
		for k, v := range record {
			if key, ok := k.(string); ok {
				out[strings.ToLower(key)] = v
			}
		}
		return out, true
	}
	return nil, false
}

func eventsField(raw map[string]interface{}, key string) []Event {
	list := listField(raw, key)
	events := make([]Event, len(list))
	for i, item := range list {
		record, ok := recordOf(item)
		if !ok {
			continue
		}
		events[i] = Event{
			Month:  numberField(record, "month", Empty()),
			Amount: numberField(record, "amount", Empty()),
		}
	}
	return events
}

func valuesField(raw map[string]interface{}, key string) []Value {
	list := listField(raw, key)
	values := make([]Value, len(list))
	for i, item := range list {
		values[i], _ = ValueFromInterface(item)
	}
	return values
}

func costItemsField(raw map[string]interface{}, key string) []CostItem {
	var items []CostItem
	for _, item := range listField(raw, key) {
		record, ok := recordOf(item)
		if !ok {
			continue
		}
		items = append(items, CostItem{
			Code:       stringField(record, "code", ""),
			Label:      stringField(record, "label", ""),
			Amount:     numberField(record, "amount", Empty()),
			IsFinanced: boolField(record, "is_financed", false),
		})
	}
	return items
}
