// Package constants provides shared constants for the cashflow-forecast application.
package constants

// DateTimeLayout is the format expected for the optional start date in config
// files and is also the period label format.
const DateTimeLayout = "2006-01"

// Projection constants
const (
	// DefaultHorizon is the number of periods covered by a projection when none
	// is configured.
	DefaultHorizon = 60

	// MaxHorizon bounds the horizon accepted over HTTP.
	MaxHorizon = 600

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons
	CurrencyTolerance = 0.01

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// Defaults taken from the projection form.
const (
	DefaultPrincipal                   = 300000000.0
	DefaultOperationCost               = 6000000.0
	DefaultInstallmentCount            = 14
	DefaultInstallmentAmount           = 1500000.0
	DefaultGapPeriods                  = 6
	DefaultRegulationInstallmentCount  = 5
	DefaultRegulationInstallmentAmount = 500000.0
	DefaultDistributionPct             = 40
	DefaultFixedPeriodicPayment        = 5000000.0
	DefaultReinvestmentPrincipal       = 6000000.0
)

// Currency display constants
const (
	// DefaultCurrencyPrefix is prepended to every formatted amount.
	DefaultCurrencyPrefix = "Gs. "

	// DefaultThousandsSeparator groups the integer digits of formatted amounts.
	DefaultThousandsSeparator = "."
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// CSVFileName is the file name offered for CSV downloads.
	CSVFileName = "flujo_de_caja.csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeoutSeconds = 10
)
