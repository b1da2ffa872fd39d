// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/financing-simulator/pkg/constants"
	"github.com/iwvelando/financing-simulator/pkg/format"
	"github.com/iwvelando/financing-simulator/pkg/inputs"
	"github.com/iwvelando/financing-simulator/pkg/mathutil"
	"github.com/iwvelando/financing-simulator/pkg/schedule"
)

// ValidateAmortizationType returns a warning for amortization types that
// cannot be computed, or an empty string.
func ValidateAmortizationType(name string, t inputs.AmortizationType) string {
	if _, err := schedule.StrategyFor(t); err != nil {
		return fmt.Sprintf("Simulation '%s' has unknown amortization type %q - no schedule will be computed", name, t)
	}
	if !schedule.IsImplemented(t) {
		return fmt.Sprintf("Simulation '%s' uses amortization type %s which has no computed schedule", name, t)
	}
	return ""
}

// SimulationWarnings reports inputs that will be ignored or that prevent a
// schedule from being computed.
func SimulationWarnings(name string, in *inputs.Inputs) []string {
	var warnings []string

	if warning := ValidateAmortizationType(name, in.AmortizationType); warning != "" {
		warnings = append(warnings, warning)
	}

	termMonths, err := schedule.TermMonths(in)
	if err != nil {
		return append(warnings, fmt.Sprintf("Simulation '%s': %v", name, err))
	}

	for _, event := range schedule.DroppedEvents(in, termMonths) {
		month := event.Month.String()
		if month == "" {
			month = "(empty)"
		}
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' %s #%d at month %s is outside the %d-month term and will be ignored",
			name, event.Kind, event.Index+1, month, termMonths))
	}

	if warning := trancheTotalWarning(name, in); warning != "" {
		warnings = append(warnings, warning)
	}

	configured := len(in.ManagementFeeValues)
	if configured > 0 && configured < termMonths {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' management fee covers %d of %d months - no management fee will be charged",
			name, configured, termMonths))
	}

	return warnings
}

// trancheTotalWarning flags parceled financing whose tranches do not add up
// to the financed value.
func trancheTotalWarning(name string, in *inputs.Inputs) string {
	if !in.FinancedIsParceled || !in.FinancedValue.IsProvided() {
		return ""
	}
	financed := in.FinancedValue.OrZero()
	if mathutil.IsZero(financed) {
		return ""
	}

	total := 0.0
	for _, tranche := range in.FinancedTranches {
		total += tranche.Amount.OrZero()
	}
	total = mathutil.Round(total)
	if mathutil.WithinTolerance(total, financed, constants.CurrencyTolerance) {
		return ""
	}
	return fmt.Sprintf("Simulation '%s' tranches add up to %s but the financed value is %s",
		name, format.Currency(total), format.Currency(financed))
}
