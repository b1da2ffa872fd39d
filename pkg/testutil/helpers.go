// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/financing-simulator/internal/simulate"
	"github.com/iwvelando/financing-simulator/pkg/schedule"
)

// FindSimulation finds a simulation by ID in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindSimulation(results []simulate.Result, id string) *simulate.Result {
	for i := range results {
		if results[i].ID == id {
			return &results[i]
		}
	}
	return nil
}

// SumRows adds up one column of a schedule.
func SumRows(s *schedule.Schedule, column func(schedule.Row) float64) float64 {
	if s == nil {
		return 0
	}
	total := 0.0
	for _, row := range s.Rows {
		total += column(row)
	}
	return total
}
