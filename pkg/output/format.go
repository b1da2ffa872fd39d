// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/financing-simulator/internal/simulate"
	"github.com/iwvelando/financing-simulator/pkg/constants"
	"github.com/iwvelando/financing-simulator/pkg/format"
	"github.com/iwvelando/financing-simulator/pkg/schedule"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []simulate.Result) {
	WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable table to w.
func WritePretty(w io.Writer, results []simulate.Result) {
	p := message.NewPrinter(language.BrazilianPortuguese)
	for _, result := range results {
		fmt.Fprintf(w, "--- Results for simulation %s ---\n", result.Title)
		if result.Failed() {
			fmt.Fprintf(w, "Error: %s\n", result.Error)
		} else {
			if result.Inputs != nil {
				fmt.Fprintf(w, "Term: %d months | Rate: %s a.m. | Correction: %s\n",
					result.TermMonths,
					format.Percent(result.Inputs.FixedRateAM.OrZero()*constants.PercentageMultiplier),
					result.Inputs.CorrectionLabel,
				)
			}
			writeRows(w, p, result.Schedule)
			writeKPIs(w, result.Schedule.KPIs)
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

func writeRows(w io.Writer, p *message.Printer, s *schedule.Schedule) {
	fmt.Fprintf(w, "Month | Events        | Balance        | Interest     | Insurance    | Mgmt fee     | Principal      | Payment\n")
	fmt.Fprintf(w, "_____ | _____________ | ______________ | ____________ | ____________ | ____________ | ______________ | _______\n")
	for _, row := range s.Rows {
		_, _ = p.Fprintf(w, "%5d | %13.2f | %14.2f | %12.2f | %12.2f | %12.2f | %14.2f | %.2f\n",
			row.Month,
			row.EventsTotal,
			row.OpeningAdjustedBalance,
			row.Interest,
			row.Insurance,
			row.ManagementFee,
			row.PrincipalRepaid,
			row.TotalPayment,
		)
	}
}

func writeKPIs(w io.Writer, kpis schedule.KPIs) {
	fmt.Fprintf(w, "Final balance:            %s\n", format.Currency(kpis.FinalBalance))
	fmt.Fprintf(w, "Total interest:           %s\n", format.Currency(kpis.TotalInterest))
	fmt.Fprintf(w, "Total insurance:          %s\n", format.Currency(kpis.TotalInsurance))
	fmt.Fprintf(w, "Total management fee:     %s\n", format.Currency(kpis.TotalManagementFee))
	fmt.Fprintf(w, "Final month payment:      %s\n", format.Currency(kpis.FinalMonthPayment))
	fmt.Fprintf(w, "Total paid over contract: %s\n", format.Currency(kpis.TotalPaidOverContract))
}

var csvHeader = []string{
	"simulation",
	"month",
	"events_tranche",
	"events_structuring_fee",
	"events_financed_expense",
	"events_total",
	"opening_adjusted_balance",
	"interest",
	"insurance",
	"management_fee",
	"installment",
	"principal_repaid",
	"total_payment",
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []simulate.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders every computed schedule as one CSV document. Failed
// simulations are skipped.
func CsvString(results []simulate.Result) string {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(csvHeader)

	for _, result := range results {
		if result.Failed() || result.Schedule == nil {
			continue
		}
		for _, row := range result.Schedule.Rows {
			_ = writer.Write([]string{
				result.Title,
				strconv.Itoa(row.Month),
				amount(row.EventsTranche),
				amount(row.EventsStructuringFee),
				amount(row.EventsFinancedExpense),
				amount(row.EventsTotal),
				amount(row.OpeningAdjustedBalance),
				amount(row.Interest),
				amount(row.Insurance),
				amount(row.ManagementFee),
				amount(row.Installment),
				amount(row.PrincipalRepaid),
				amount(row.TotalPayment),
			})
		}
	}

	writer.Flush()
	return buf.String()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
