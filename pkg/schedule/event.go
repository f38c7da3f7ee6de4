// Package schedule defines the funding events that feed a cash-flow projection
// and the derivation of their operation counts.
package schedule

import "github.com/iwvelando/cashflow-forecast/pkg/mathutil"

// Regulation is the optional secondary fee schedule collected after the
// regular installments of an event have finished.
type Regulation struct {
	GapPeriods        int     `json:"gapPeriods" yaml:"gapPeriods"`
	InstallmentCount  int     `json:"installmentCount" yaml:"installmentCount"`
	InstallmentAmount float64 `json:"installmentAmount" yaml:"installmentAmount"`
	DistributionPct   int     `json:"distributionPct" yaml:"distributionPct"`
}

// Fields holds the caller-supplied parameters of a funding event.
type Fields struct {
	StartPeriod       int         `json:"startPeriod" yaml:"startPeriod"`
	Principal         float64     `json:"principal" yaml:"principal"`
	OperationCost     float64     `json:"operationCost" yaml:"operationCost"`
	InstallmentCount  int         `json:"installmentCount" yaml:"installmentCount"`
	InstallmentAmount float64     `json:"installmentAmount" yaml:"installmentAmount"`
	DelayPeriods      int         `json:"delayPeriods" yaml:"delayPeriods"`
	NoncollectionRate float64     `json:"noncollectionRate" yaml:"noncollectionRate"`
	Regulation        *Regulation `json:"regulation,omitempty" yaml:"regulation,omitempty"`
}

// FundingEvent is one cash outflow together with the collection schedule it
// generates. It is immutable once built; use New to construct one.
type FundingEvent struct {
	fields Fields
}

// New builds a FundingEvent from the given fields. Values are stored verbatim;
// validation is the caller's job.
func New(fields Fields) FundingEvent {
	if fields.Regulation != nil {
		reg := *fields.Regulation
		fields.Regulation = &reg
	}
	return FundingEvent{fields: fields}
}

// DeriveOperations returns the number of parallel operations a principal buys
// at the given cost per operation. A non-positive cost yields zero operations
// and quotients beyond the int range saturate at math.MaxInt.
func DeriveOperations(principal, operationCost float64) int {
	if operationCost <= 0 {
		return 0
	}
	ops := mathutil.FloorInt(principal / operationCost)
	if ops < 1 {
		return 1
	}
	return ops
}

// Fields returns a copy of the parameters the event was built with.
func (e FundingEvent) Fields() Fields {
	f := e.fields
	if f.Regulation != nil {
		reg := *f.Regulation
		f.Regulation = &reg
	}
	return f
}

// Operations is derived from Principal and OperationCost on every call.
func (e FundingEvent) Operations() int {
	return DeriveOperations(e.fields.Principal, e.fields.OperationCost)
}

func (e FundingEvent) StartPeriod() int           { return e.fields.StartPeriod }
func (e FundingEvent) Principal() float64         { return e.fields.Principal }
func (e FundingEvent) OperationCost() float64     { return e.fields.OperationCost }
func (e FundingEvent) InstallmentCount() int      { return e.fields.InstallmentCount }
func (e FundingEvent) InstallmentAmount() float64 { return e.fields.InstallmentAmount }
func (e FundingEvent) DelayPeriods() int          { return e.fields.DelayPeriods }
func (e FundingEvent) NoncollectionRate() float64 { return e.fields.NoncollectionRate }

// Regulation returns the regulation sub-schedule, if the event has one.
func (e FundingEvent) Regulation() (Regulation, bool) {
	if e.fields.Regulation == nil {
		return Regulation{}, false
	}
	return *e.fields.Regulation, true
}

// RegulationStart is the first period of the regulation sub-schedule relative
// to the given base period. Offsets too large for an int saturate at
// math.MaxInt, i.e. beyond any horizon.
func (e FundingEvent) RegulationStart(base int) int {
	gap := 0
	if e.fields.Regulation != nil {
		gap = e.fields.Regulation.GapPeriods
	}
	return mathutil.SaturatingAdd(base, e.fields.DelayPeriods, e.fields.InstallmentCount, gap)
}
