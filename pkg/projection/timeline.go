package projection

// Column names as shown in tables and CSV exports.
const (
	ColumnInflows                  = "Ingresos"
	ColumnReinvestment             = "Reinversión"
	ColumnFixedPayment             = "Pago Mensual"
	ColumnTotalCollected           = "Total Cobrado"
	ColumnCumulativeBalance        = "Saldo Acumulado"
	ColumnTotalAvailable           = "Total Disponible"
	ColumnAvailableForReinvestment = "Disponible para Reinversión"
	ColumnWriteOff                 = "No Cobro"
	ColumnOpenOperations           = "Operaciones Abiertas"
)

// Columns lists every timeline column in table order.
var Columns = []string{
	ColumnInflows,
	ColumnReinvestment,
	ColumnFixedPayment,
	ColumnTotalCollected,
	ColumnCumulativeBalance,
	ColumnTotalAvailable,
	ColumnAvailableForReinvestment,
	ColumnWriteOff,
	ColumnOpenOperations,
}

// Timeline is the projection ledger, stored column-wise. Every column has one
// entry per period in [0, horizon).
type Timeline struct {
	Inflows                  []float64
	Reinvestment             []float64
	FixedPayment             []float64
	TotalCollected           []float64
	CumulativeBalance        []float64
	TotalAvailable           []float64
	AvailableForReinvestment []float64
	WriteOff                 []float64
	OpenOperations           []int

	horizon int
	opening float64
}

// Row is a single period of a Timeline.
type Row struct {
	Period                   int     `json:"period"`
	Inflows                  float64 `json:"inflows"`
	Reinvestment             float64 `json:"reinvestment"`
	FixedPayment             float64 `json:"fixedPayment"`
	TotalCollected           float64 `json:"totalCollected"`
	CumulativeBalance        float64 `json:"cumulativeBalance"`
	TotalAvailable           float64 `json:"totalAvailable"`
	AvailableForReinvestment float64 `json:"availableForReinvestment"`
	WriteOff                 float64 `json:"writeOff"`
	OpenOperations           int     `json:"openOperations"`
}

func newTimeline(horizon int) Timeline {
	return Timeline{
		Inflows:                  make([]float64, horizon),
		Reinvestment:             make([]float64, horizon),
		FixedPayment:             make([]float64, horizon),
		TotalCollected:           make([]float64, horizon),
		CumulativeBalance:        make([]float64, horizon),
		TotalAvailable:           make([]float64, horizon),
		AvailableForReinvestment: make([]float64, horizon),
		WriteOff:                 make([]float64, horizon),
		OpenOperations:           make([]int, horizon),
		horizon:                  horizon,
	}
}

// span returns the indexes [lo, hi) of a run of count consecutive periods
// starting at first that land inside the timeline.
func (tl *Timeline) span(first, count int) (lo, hi int) {
	if count <= 0 || first >= tl.horizon {
		return 0, 0
	}
	if first < 0 {
		if first <= -count {
			return 0, 0
		}
		lo = -first
	}
	hi = count
	if room := tl.horizon - max(first, 0); hi-lo > room {
		hi = lo + room
	}
	return lo, hi
}

// derive fills the cumulative columns once superposition is complete.
func (tl *Timeline) derive() {
	var collected, reinvested, paid float64
	for t := 0; t < tl.horizon; t++ {
		collected += tl.Inflows[t]
		reinvested += tl.Reinvestment[t]
		paid += tl.FixedPayment[t]

		tl.TotalCollected[t] = collected
		tl.TotalAvailable[t] = collected - reinvested - paid
		tl.CumulativeBalance[t] = tl.opening + collected - reinvested - paid

		if t == 0 {
			tl.AvailableForReinvestment[t] = tl.opening
			continue
		}
		tl.AvailableForReinvestment[t] = tl.AvailableForReinvestment[t-1] +
			tl.Inflows[t] - tl.FixedPayment[t] - tl.Reinvestment[t]
	}
}

// Len returns the number of periods in the timeline.
func (tl Timeline) Len() int {
	return tl.horizon
}

// Opening returns the starting balance, i.e. the negated initial principal.
func (tl Timeline) Opening() float64 {
	return tl.opening
}

// Row returns period t. It panics if t is outside [0, Len()).
func (tl Timeline) Row(t int) Row {
	return Row{
		Period:                   t,
		Inflows:                  tl.Inflows[t],
		Reinvestment:             tl.Reinvestment[t],
		FixedPayment:             tl.FixedPayment[t],
		TotalCollected:           tl.TotalCollected[t],
		CumulativeBalance:        tl.CumulativeBalance[t],
		TotalAvailable:           tl.TotalAvailable[t],
		AvailableForReinvestment: tl.AvailableForReinvestment[t],
		WriteOff:                 tl.WriteOff[t],
		OpenOperations:           tl.OpenOperations[t],
	}
}

// Rows returns every period in order.
func (tl Timeline) Rows() []Row {
	rows := make([]Row, tl.horizon)
	for t := range rows {
		rows[t] = tl.Row(t)
	}
	return rows
}

// Values returns the numeric values of a row in Columns order.
func (r Row) Values() []float64 {
	return []float64{
		r.Inflows,
		r.Reinvestment,
		r.FixedPayment,
		r.TotalCollected,
		r.CumulativeBalance,
		r.TotalAvailable,
		r.AvailableForReinvestment,
		r.WriteOff,
		float64(r.OpenOperations),
	}
}
