// Package simulate computes the financing schedules for every active
// simulation of a configuration.
package simulate

import (
	"errors"
	"fmt"

	"github.com/iwvelando/financing-simulator/internal/config"
	"github.com/iwvelando/financing-simulator/pkg/inputs"
	"github.com/iwvelando/financing-simulator/pkg/schedule"
	"go.uber.org/zap"
)

// Result holds the outcome of a single simulation.
type Result struct {
	ID         string
	Title      string
	Inputs     *inputs.Inputs
	TermMonths int
	Schedule   *schedule.Schedule
	Error      string
}

// Failed reports whether no schedule could be computed.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Run builds the schedules for all active simulations. A simulation whose
// inputs cannot produce a schedule carries the failure in Result.Error and
// does not stop the run.
func Run(logger *zap.Logger, conf *config.Configuration) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil
	}

	builder := schedule.NewBuilder(logger)

	var results []Result
	for i := range conf.Simulations {
		simulation := &conf.Simulations[i]
		if !simulation.Active {
			logger.Debug(fmt.Sprintf("skipping simulation %s because it is inactive", simulation.Title),
				zap.String("op", "simulate.Run"),
			)
			continue
		}

		in := simulation.SimulationInputs()
		result := Result{
			ID:     simulation.ID,
			Title:  simulation.Title,
			Inputs: in,
		}

		built, err := builder.Build(in)
		if err != nil {
			result.Error = err.Error()

			var validationErr *schedule.ValidationError
			if errors.As(err, &validationErr) || errors.Is(err, schedule.ErrAmortizationNotImplemented) {
				logger.Warn(fmt.Sprintf("simulation %s has no schedule", simulation.Title),
					zap.String("op", "simulate.Run"),
					zap.String("id", simulation.ID),
					zap.Error(err),
				)
			} else {
				logger.Error(fmt.Sprintf("failed to build schedule for simulation %s", simulation.Title),
					zap.String("op", "simulate.Run"),
					zap.String("id", simulation.ID),
					zap.Error(err),
				)
			}
			results = append(results, result)
			continue
		}

		result.Schedule = built
		result.TermMonths = built.TermMonths
		logger.Debug(fmt.Sprintf("computed %d schedule rows for simulation %s", len(built.Rows), simulation.Title),
			zap.String("op", "simulate.Run"),
			zap.String("id", simulation.ID),
		)
		results = append(results, result)
	}

	return results
}

// ScheduleResult converts a Result into the tagged success-or-error shape.
func (r Result) ScheduleResult() schedule.Result {
	if r.Failed() {
		return schedule.Result{Error: r.Error}
	}
	return schedule.NewResult(r.Schedule, nil)
}
