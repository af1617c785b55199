// Package risk implements position sizing and drawdown-aware risk controls
// for funded accounts. Sizing math runs on decimals so contract counts never
// drift from float rounding.
package risk

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Futures point values in dollars per point per contract. Unknown symbols
// fall back to the ES point value.
var pointValues = map[string]float64{
	"MES": 5,
	"MNQ": 2,
	"ES":  50,
	"NQ":  20,
	"YM":  5,
	"RTY": 5,
	"CL":  1000,
	"GC":  100,
}

const defaultPointValue = 50.0

// PointValue returns the dollar value of one point for the given instrument
func PointValue(instrument string) float64 {
	if value, ok := pointValues[instrument]; ok {
		return value
	}
	return defaultPointValue
}

// PositionPlan is the result of a position size calculation
type PositionPlan struct {
	Contracts   int     `json:"contracts"`
	RiskAmount  float64 `json:"risk_amount"`
	ActualRisk  float64 `json:"actual_risk"`
	RiskPercent float64 `json:"risk_percent"`
}

// PositionSize computes how many contracts fit the risk budget: the account
// balance times the risk fraction, divided by the dollar risk per contract,
// rounded down. ActualRisk is the realized dollar risk of that whole number
// of contracts.
func PositionSize(balance, riskFraction, stopPoints, pointValue float64) (PositionPlan, error) {
	if balance <= 0 {
		return PositionPlan{}, fmt.Errorf("balance must be positive, got %.2f", balance)
	}
	if riskFraction <= 0 || riskFraction >= 1 {
		return PositionPlan{}, fmt.Errorf("risk fraction must be in (0, 1), got %.4f", riskFraction)
	}
	if stopPoints <= 0 {
		return PositionPlan{}, fmt.Errorf("stop distance must be positive, got %.2f", stopPoints)
	}
	if pointValue <= 0 {
		return PositionPlan{}, fmt.Errorf("point value must be positive, got %.2f", pointValue)
	}

	balanceDec := decimal.NewFromFloat(balance)
	riskAmount := balanceDec.Mul(decimal.NewFromFloat(riskFraction))
	perContract := decimal.NewFromFloat(stopPoints).Mul(decimal.NewFromFloat(pointValue))

	contracts := riskAmount.Div(perContract).Floor()
	actualRisk := contracts.Mul(perContract)
	riskPercent, _ := actualRisk.Div(balanceDec).Mul(decimal.NewFromInt(100)).Round(2).Float64()

	riskAmountF, _ := riskAmount.Round(2).Float64()
	actualRiskF, _ := actualRisk.Round(2).Float64()

	return PositionPlan{
		Contracts:   int(contracts.IntPart()),
		RiskAmount:  riskAmountF,
		ActualRisk:  actualRiskF,
		RiskPercent: riskPercent,
	}, nil
}
