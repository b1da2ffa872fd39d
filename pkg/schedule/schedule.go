// Package schedule builds the month-by-month cashflow ledger of a financing
// simulation.
package schedule

import (
	"errors"
	"fmt"

	"github.com/iwvelando/financing-simulator/pkg/inputs"
)

// ErrAmortizationNotImplemented is returned for amortization types that are
// accepted as input but have no computed schedule.
var ErrAmortizationNotImplemented = errors.New("amortization type not implemented")

// ValidationError reports inputs that do not allow a schedule to be
// computed. Its message is meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrMissingTerm is returned when construction or grace months are empty.
var ErrMissingTerm = &ValidationError{Message: "construction months and grace months are required to compute the schedule"}

// Row is one month of the ledger.
type Row struct {
	Month                  int     `json:"month"`
	EventsTranche          float64 `json:"eventsTranche"`
	EventsStructuringFee   float64 `json:"eventsStructuringFee"`
	EventsFinancedExpense  float64 `json:"eventsFinancedExpense"`
	EventsTotal            float64 `json:"eventsTotal"`
	OpeningAdjustedBalance float64 `json:"openingAdjustedBalance"`
	Interest               float64 `json:"interest"`
	Insurance              float64 `json:"insurance"`
	ManagementFee          float64 `json:"managementFee"`
	Installment            float64 `json:"installment"`
	PrincipalRepaid        float64 `json:"principalRepaid"`
	TotalPayment           float64 `json:"totalPayment"`
}

// KPIs summarize a schedule.
type KPIs struct {
	FinalBalance          float64 `json:"finalBalance"`
	TotalInterest         float64 `json:"totalInterest"`
	TotalInsurance        float64 `json:"totalInsurance"`
	TotalManagementFee    float64 `json:"totalManagementFee"`
	FinalMonthPayment     float64 `json:"finalMonthPayment"`
	TotalPaidOverContract float64 `json:"totalPaidOverContract"`
}

// Schedule is a computed ledger with months 0..TermMonths.
type Schedule struct {
	Rows       []Row `json:"rows"`
	KPIs       KPIs  `json:"kpis"`
	TermMonths int   `json:"termMonths"`
}

// Result is the tagged shape handed to presentation layers: either a
// schedule or a single error message, never both.
type Result struct {
	*Schedule
	Error string `json:"error,omitempty"`
}

// NewResult wraps the outcome of Build.
func NewResult(s *Schedule, err error) Result {
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Schedule: s}
}

// Strategy computes a schedule for one amortization type.
type Strategy interface {
	Type() inputs.AmortizationType
	Build(in *inputs.Inputs, termMonths int) (*Schedule, error)
}

// StrategyFor returns the strategy that handles t. An empty type is bullet.
func StrategyFor(t inputs.AmortizationType) (Strategy, error) {
	switch t {
	case "", inputs.AmortizationBullet:
		return Bullet{}, nil
	case inputs.AmortizationSAC, inputs.AmortizationPRICE:
		return unimplemented{amortization: t}, nil
	}
	return nil, fmt.Errorf("unknown amortization type %q", t)
}

// IsImplemented reports whether t has a computed schedule.
func IsImplemented(t inputs.AmortizationType) bool {
	strategy, err := StrategyFor(t)
	if err != nil {
		return false
	}
	_, stub := strategy.(unimplemented)
	return !stub
}

type unimplemented struct {
	amortization inputs.AmortizationType
}

func (u unimplemented) Type() inputs.AmortizationType {
	return u.amortization
}

func (u unimplemented) Build(*inputs.Inputs, int) (*Schedule, error) {
	return nil, fmt.Errorf("%s: %w", u.amortization, ErrAmortizationNotImplemented)
}
