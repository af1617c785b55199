package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// EquityPoint represents a point in the equity curve
type EquityPoint struct {
	Date        time.Time `json:"date"`
	Equity      float64   `json:"equity"`
	DrawdownPct float64   `json:"drawdown_pct"`
}

// EquityCurve represents a time-series of equity points
type EquityCurve []EquityPoint

// BuildEquityCurve derives cumulative equity and percentage drawdown from a
// daily series and a starting balance. The peak is the running maximum of
// the equity values themselves, so a series opening at a loss sets the peak
// at its first equity and draws down only from later retracements. Output
// order matches the input date order; a zero running peak resolves the
// drawdown percentage to 0.
func BuildEquityCurve(series DailySeries, startingBalance float64) EquityCurve {
	curve := make(EquityCurve, 0, len(series))
	equity := startingBalance
	peak := math.Inf(-1)
	for _, point := range series {
		equity += point.PnL
		if equity > peak {
			peak = equity
		}
		drawdownPct := 0.0
		if peak != 0 {
			drawdownPct = (peak - equity) / peak * 100
		}
		curve = append(curve, EquityPoint{
			Date:        point.Date,
			Equity:      equity,
			DrawdownPct: drawdownPct,
		})
	}
	return curve
}

// GetReturns calculates periodic returns from the equity curve
func (e EquityCurve) GetReturns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Equity
		curr := e[i].Equity
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (curr-prev)/prev)
	}
	return returns
}

// ToCSV exports the equity curve to a CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,equity,drawdown_pct\n")
	for _, point := range e {
		buf.WriteString(point.Date.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Equity))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.DrawdownPct))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the equity curve to a JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
