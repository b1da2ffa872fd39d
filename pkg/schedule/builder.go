package schedule

import (
	"fmt"

	"github.com/iwvelando/financing-simulator/pkg/constants"
	"github.com/iwvelando/financing-simulator/pkg/inputs"
	"github.com/iwvelando/financing-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// MaxTermMonths is the longest schedule Build will compute.
const MaxTermMonths = constants.MaxTermMonths

// Builder computes schedules, logging dropped events at debug level.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a new builder instance.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build computes the schedule for the amortization type of in. It never
// modifies in and the returned schedule shares no memory with it.
func (b *Builder) Build(in *inputs.Inputs) (*Schedule, error) {
	if in == nil {
		return nil, ErrMissingTerm
	}

	termMonths, err := TermMonths(in)
	if err != nil {
		return nil, err
	}

	strategy, err := StrategyFor(in.AmortizationType)
	if err != nil {
		return nil, err
	}

	if b.logger.Core().Enabled(zap.DebugLevel) {
		_, dropped := collectEvents(in, termMonths)
		for _, event := range dropped {
			b.logger.Debug(fmt.Sprintf("dropping %s %d at month %s outside term of %d months",
				event.Kind, event.Index, event.Month.String(), termMonths),
				zap.String("op", "schedule.Build"),
				zap.String("amount", event.Amount.String()),
			)
		}
	}

	return strategy.Build(in, termMonths)
}

// Build computes a schedule without logging.
func Build(in *inputs.Inputs) (*Schedule, error) {
	return NewBuilder(nil).Build(in)
}

// Bullet charges interest, insurance and management fee monthly on the
// running balance and repays all principal in the final month.
type Bullet struct{}

// Type implements Strategy.
func (Bullet) Type() inputs.AmortizationType {
	return inputs.AmortizationBullet
}

// Build implements Strategy.
func (Bullet) Build(in *inputs.Inputs, termMonths int) (*Schedule, error) {
	ledger := CollectEvents(in, termMonths)

	fixedRate := in.FixedRateAM.OrZero()
	insurancePct := in.InsurancePct.OrZero()
	managementValues := in.ManagementFeeValues
	// A partially filled sequence means the fee is not configured yet.
	hasFullManagementValues := len(managementValues) >= termMonths

	rows := make([]Row, 0, termMonths+1)
	var kpis KPIs
	balance := 0.0

	for month := 0; month <= termMonths; month++ {
		events := ledger[month]
		eventsTotal := events.Total()

		row := Row{
			Month:                 month,
			EventsTranche:         events.Tranche,
			EventsStructuringFee:  events.StructuringFee,
			EventsFinancedExpense: events.FinancedExpense,
			EventsTotal:           eventsTotal,
		}

		if month == 0 {
			balance = eventsTotal
			row.OpeningAdjustedBalance = balance
			rows = append(rows, row)
			continue
		}

		balance += eventsTotal
		row.OpeningAdjustedBalance = balance
		row.Interest = balance * fixedRate
		row.Insurance = mathutil.ApplyPercentage(balance, insurancePct)
		if hasFullManagementValues {
			row.ManagementFee = managementValues[month-1].OrZero()
		}
		row.Installment = row.Interest + row.Insurance + row.ManagementFee
		row.TotalPayment = row.Installment

		kpis.TotalInterest += row.Interest
		kpis.TotalInsurance += row.Insurance
		kpis.TotalManagementFee += row.ManagementFee
		kpis.TotalPaidOverContract += row.Installment

		rows = append(rows, row)
	}

	last := &rows[len(rows)-1]
	last.PrincipalRepaid = last.OpeningAdjustedBalance
	last.TotalPayment = last.Installment + last.PrincipalRepaid
	if termMonths > 0 {
		kpis.TotalPaidOverContract += last.PrincipalRepaid
	}

	kpis.FinalBalance = last.OpeningAdjustedBalance
	kpis.FinalMonthPayment = last.TotalPayment

	return &Schedule{Rows: rows, KPIs: kpis, TermMonths: termMonths}, nil
}
