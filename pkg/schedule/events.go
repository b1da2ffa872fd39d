package schedule

import (
	"fmt"
	"math"

	"github.com/iwvelando/financing-simulator/pkg/inputs"
	"github.com/iwvelando/financing-simulator/pkg/mathutil"
)

// MonthEvents are the amounts posted at one month, by category.
type MonthEvents struct {
	Tranche         float64
	StructuringFee  float64
	FinancedExpense float64
}

// Total is the sum of all categories.
func (e MonthEvents) Total() float64 {
	return e.Tranche + e.StructuringFee + e.FinancedExpense
}

// EventLedger maps a month index to the events posted at it.
type EventLedger map[int]MonthEvents

func (l EventLedger) addTranche(month int, amount float64) {
	e := l[month]
	e.Tranche += amount
	l[month] = e
}

func (l EventLedger) addStructuringFee(month int, amount float64) {
	e := l[month]
	e.StructuringFee += amount
	l[month] = e
}

func (l EventLedger) addFinancedExpense(month int, amount float64) {
	e := l[month]
	e.FinancedExpense += amount
	l[month] = e
}

// DroppedEvent describes an event left out of the ledger.
type DroppedEvent struct {
	Kind   string
	Index  int
	Month  inputs.Value
	Amount inputs.Value
}

// Event kinds reported in DroppedEvent.
const (
	KindTranche        = "tranche"
	KindStructuringFee = "structuring fee"
)

// TermMonths is max(0, trunc(construction + grace)). Terms beyond
// MaxTermMonths are a limit of this simulator and are rejected rather than
// allocated.
func TermMonths(in *inputs.Inputs) (int, error) {
	if !in.ConstructionMonths.IsProvided() || !in.GraceMonths.IsProvided() {
		return 0, ErrMissingTerm
	}
	term := math.Trunc(in.ConstructionMonths.OrZero() + in.GraceMonths.OrZero())
	if !mathutil.IsFinite(term) {
		return 0, &ValidationError{Message: "construction months and grace months must be finite numbers"}
	}
	if term > MaxTermMonths {
		return 0, &ValidationError{Message: fmt.Sprintf(
			"term of %.0f months exceeds the simulator limit of %d months", term, MaxTermMonths)}
	}
	if term < 0 {
		return 0, nil
	}
	return int(term), nil
}

// CollectEvents aggregates the financed expense, principal draws and
// structuring-fee installments into a ledger for months 0..termMonths.
// Events with an empty, negative or out-of-range month are dropped, as are
// zero amounts.
func CollectEvents(in *inputs.Inputs, termMonths int) EventLedger {
	ledger, _ := collectEvents(in, termMonths)
	return ledger
}

func collectEvents(in *inputs.Inputs, termMonths int) (EventLedger, []DroppedEvent) {
	ledger := make(EventLedger)
	var dropped []DroppedEvent

	if amount := in.FinancedExpensesAmount.OrZero(); amount != 0 {
		ledger.addFinancedExpense(0, amount)
	}

	tranches := in.FinancedTranches
	if !in.FinancedIsParceled {
		tranches = []inputs.Event{{Month: inputs.Of(0), Amount: in.FinancedValue}}
	}

	for i, tranche := range tranches {
		month, ok := eventMonth(tranche.Month, termMonths)
		if !ok {
			dropped = append(dropped, DroppedEvent{Kind: KindTranche, Index: i, Month: tranche.Month, Amount: tranche.Amount})
			continue
		}
		if amount := tranche.Amount.OrZero(); amount != 0 {
			ledger.addTranche(month, amount)
		}
	}

	for i, installment := range in.StructuringFeeInstallments {
		month, ok := eventMonth(installment.Month, termMonths)
		if !ok {
			dropped = append(dropped, DroppedEvent{Kind: KindStructuringFee, Index: i, Month: installment.Month, Amount: installment.Amount})
			continue
		}
		if amount := installment.Amount.OrZero(); amount != 0 {
			ledger.addStructuringFee(month, amount)
		}
	}

	return ledger, dropped
}

// eventMonth truncates an event month and reports whether it falls inside
// the schedule.
func eventMonth(v inputs.Value, termMonths int) (int, bool) {
	if !v.IsProvided() {
		return 0, false
	}
	month := math.Trunc(v.OrZero())
	if month < 0 || month > float64(termMonths) {
		return 0, false
	}
	return int(month), true
}

// DroppedEvents lists the tranches and structuring-fee installments whose
// month falls outside 0..termMonths.
func DroppedEvents(in *inputs.Inputs, termMonths int) []DroppedEvent {
	_, dropped := collectEvents(in, termMonths)
	return dropped
}
