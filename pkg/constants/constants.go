// Package constants provides shared constants for the financing-simulator application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermMonths bounds the length of a computed schedule (500 years).
	MaxTermMonths = 6000
)

// Simulation form defaults
const (
	// DefaultGraceMonths is the grace period suggested for a new simulation
	DefaultGraceMonths = 12

	// DefaultFixedRateAM is the default monthly fixed rate (1.45% a.m.)
	DefaultFixedRateAM = 0.0145

	// DefaultStructuringFeePct is the default structuring fee percentage
	DefaultStructuringFeePct = 0.05

	// DefaultCorrectionLabel is the default monetary correction index label
	DefaultCorrectionLabel = "IPCA (embutido)"

	// LegacyCorrectionLabel is the older spelling still found in saved simulations
	LegacyCorrectionLabel = "IPCA embutido"

	// DefaultSimulationTitle is used when a simulation has no title
	DefaultSimulationTitle = "Nova simulação"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultServerReadTimeout bounds reading a whole request, upload included
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout bounds writing a response
	DefaultServerWriteTimeout = 15 * time.Second

	// DefaultServerIdleTimeout bounds keep-alive connections
	DefaultServerIdleTimeout = 60 * time.Second

	// DefaultServerShutdownTimeout bounds the graceful shutdown
	DefaultServerShutdownTimeout = 10 * time.Second
)
