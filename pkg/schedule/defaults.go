package schedule

import "github.com/iwvelando/cashflow-forecast/pkg/constants"

// DistributionShares lists the accepted operator shares of a regulation fee.
var DistributionShares = []int{20, 40, 60, 80}

// ValidDistribution reports whether pct is one of DistributionShares.
func ValidDistribution(pct int) bool {
	for _, share := range DistributionShares {
		if share == pct {
			return true
		}
	}
	return false
}

// DefaultFields returns the parameters the projection form starts with for the
// initial investment.
func DefaultFields() Fields {
	return Fields{
		StartPeriod:       0,
		Principal:         constants.DefaultPrincipal,
		OperationCost:     constants.DefaultOperationCost,
		InstallmentCount:  constants.DefaultInstallmentCount,
		InstallmentAmount: constants.DefaultInstallmentAmount,
		Regulation: &Regulation{
			GapPeriods:        constants.DefaultGapPeriods,
			InstallmentCount:  constants.DefaultRegulationInstallmentCount,
			InstallmentAmount: constants.DefaultRegulationInstallmentAmount,
			DistributionPct:   constants.DefaultDistributionPct,
		},
	}
}

// DefaultReinvestmentFields returns the starting parameters for a reinvestment.
func DefaultReinvestmentFields() Fields {
	f := DefaultFields()
	f.StartPeriod = 1
	f.Principal = constants.DefaultReinvestmentPrincipal
	return f
}
