package inputs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFixedManagementFee is returned when a per-month management fee is
// edited while the fee is in fixed mode.
var ErrFixedManagementFee = errors.New("management fee is fixed; edit the fixed amount instead")

// Change is a single form edit: a field, an optional array index and the
// new raw value.
type Change struct {
	Field string      `json:"field"`
	Index *int        `json:"index,omitempty"`
	Value interface{} `json:"value"`
}

// SetStructuringFeeInstallmentsCount resizes the installments, keeping the
// entries whose index still exists.
func (in *Inputs) SetStructuringFeeInstallmentsCount(count Value) {
	in.StructuringFeeInstallmentsCount = count
	in.StructuringFeeInstallments = EnsureArrayLength(in.StructuringFeeInstallments, ToCount(count))
}

// SetStructuringFeeInstallment replaces the installment at index.
func (in *Inputs) SetStructuringFeeInstallment(index int, event Event) error {
	if index < 0 || index >= len(in.StructuringFeeInstallments) {
		return fmt.Errorf("structuring fee installment %d out of range [0,%d)", index, len(in.StructuringFeeInstallments))
	}
	in.StructuringFeeInstallments[index] = event
	return nil
}

// SetManagementFeeMonths resizes the per-month management fee values. In
// fixed mode every value is regenerated from the fixed amount.
func (in *Inputs) SetManagementFeeMonths(months Value) {
	in.ManagementFeeMonths = months
	in.syncManagementFeeValues()
}

// SetManagementFeeFixedAmount sets the fixed amount and, in fixed mode,
// overwrites every per-month value with it.
func (in *Inputs) SetManagementFeeFixedAmount(amount Value) {
	in.ManagementFeeFixedAmount = amount
	if in.ManagementFeeIsFixed {
		in.syncManagementFeeValues()
	}
}

// SetManagementFeeIsFixed switches between fixed and itemized mode.
// Enabling fixed mode discards itemized values; disabling it keeps the
// regenerated copies and does not restore what was itemized before.
func (in *Inputs) SetManagementFeeIsFixed(fixed bool) {
	in.ManagementFeeIsFixed = fixed
	in.syncManagementFeeValues()
}

// SetManagementFeeValue sets the itemized fee of month index+1.
func (in *Inputs) SetManagementFeeValue(index int, value Value) error {
	if in.ManagementFeeIsFixed {
		return ErrFixedManagementFee
	}
	if index < 0 || index >= len(in.ManagementFeeValues) {
		return fmt.Errorf("management fee month %d out of range [0,%d)", index, len(in.ManagementFeeValues))
	}
	in.ManagementFeeValues[index] = value
	return nil
}

func (in *Inputs) syncManagementFeeValues() {
	count := ToCount(in.ManagementFeeMonths)
	if !in.ManagementFeeIsFixed {
		in.ManagementFeeValues = EnsureArrayLength(in.ManagementFeeValues, count)
		return
	}
	values := make([]Value, count)
	for i := range values {
		values[i] = in.ManagementFeeFixedAmount
	}
	in.ManagementFeeValues = values
}

// Apply performs one form edit addressed by its persisted field name.
func (in *Inputs) Apply(change Change) error {
	field := strings.ToLower(strings.TrimSpace(change.Field))

	if target := in.numberTarget(field); target != nil {
		value, err := editValue(field, change.Value)
		if err != nil {
			return err
		}
		*target = value
		return nil
	}

	switch field {
	case "amortization_type":
		s, _ := change.Value.(string)
		t, err := ParseAmortizationType(s)
		if err != nil {
			return err
		}
		in.AmortizationType = t
	case "correction_label":
		s, ok := change.Value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string", field)
		}
		in.CorrectionLabel = NormalizeCorrectionLabel(s)
	case "structuring_fee_installments_count":
		value, err := editValue(field, change.Value)
		if err != nil {
			return err
		}
		in.SetStructuringFeeInstallmentsCount(value)
	case "structuring_fee_installments":
		index, err := requireIndex(change)
		if err != nil {
			return err
		}
		record, ok := recordOf(change.Value)
		if !ok {
			return fmt.Errorf("field %s expects an object with month and amount", field)
		}
		return in.SetStructuringFeeInstallment(index, Event{
			Month:  numberField(record, "month", Empty()),
			Amount: numberField(record, "amount", Empty()),
		})
	case "management_fee_months":
		value, err := editValue(field, change.Value)
		if err != nil {
			return err
		}
		in.SetManagementFeeMonths(value)
	case "management_fee_fixed_amount":
		value, err := editValue(field, change.Value)
		if err != nil {
			return err
		}
		in.SetManagementFeeFixedAmount(value)
	case "management_fee_is_fixed":
		b, ok := change.Value.(bool)
		if !ok {
			return fmt.Errorf("field %s expects a boolean", field)
		}
		in.SetManagementFeeIsFixed(b)
	case "management_fee_values":
		index, err := requireIndex(change)
		if err != nil {
			return err
		}
		value, err := editValue(field, change.Value)
		if err != nil {
			return err
		}
		return in.SetManagementFeeValue(index, value)
	case "financed_is_parceled":
		b, ok := change.Value.(bool)
		if !ok {
			return fmt.Errorf("field %s expects a boolean", field)
		}
		in.FinancedIsParceled = b
	case "financed_tranches":
		in.FinancedTranches = eventsField(map[string]interface{}{field: change.Value}, field)
	default:
		return fmt.Errorf("unknown field %q", change.Field)
	}
	return nil
}

func (in *Inputs) numberTarget(field string) *Value {
	switch field {
	case "budget_total":
		return &in.BudgetTotal
	case "value_to_incur":
		return &in.ValueToIncur
	case "financed_value":
		return &in.FinancedValue
	case "financed_expenses_amount":
		return &in.FinancedExpensesAmount
	case "guarantee_value":
		return &in.GuaranteeValue
	case "guarantee_pct":
		return &in.GuaranteePct
	case "construction_months":
		return &in.ConstructionMonths
	case "grace_months":
		return &in.GraceMonths
	case "fixed_rate_am":
		return &in.FixedRateAM
	case "insurance_pct":
		return &in.InsurancePct
	case "structuring_fee_pct":
		return &in.StructuringFeePct
	}
	return nil
}

// editValue reads an edited number. A nil or blank value clears the field.
func editValue(field string, raw interface{}) (Value, error) {
	if raw == nil {
		return Empty(), nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return Empty(), nil
	}
	value, ok := ValueFromInterface(raw)
	if !ok {
		return Empty(), fmt.Errorf("field %s: %v is not a number", field, raw)
	}
	return value, nil
}

func requireIndex(change Change) (int, error) {
	if change.Index == nil {
		return 0, fmt.Errorf("field %s requires an index", change.Field)
	}
	return *change.Index, nil
}
