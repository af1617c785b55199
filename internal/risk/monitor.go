package risk

// DrawdownStatus grades how much of the daily loss limit an account has
// consumed
type DrawdownStatus string

const (
	StatusOK      DrawdownStatus = "OK"
	StatusCaution DrawdownStatus = "CAUTION"
	StatusWarning DrawdownStatus = "WARNING"
)

// CorrelationLevel grades the average absolute correlation across strategies
type CorrelationLevel string

const (
	CorrelationLow      CorrelationLevel = "LOW"
	CorrelationModerate CorrelationLevel = "MODERATE"
	CorrelationHigh     CorrelationLevel = "HIGH"
)

// AccountDrawdown is one row of the drawdown monitor
type AccountDrawdown struct {
	Account         string         `json:"account"`
	CurrentDrawdown float64        `json:"current_drawdown"`
	DailyLimit      float64        `json:"daily_limit"`
	PercentOfLimit  float64        `json:"percent_of_limit"`
	Status          DrawdownStatus `json:"status"`
	RiskMultiplier  float64        `json:"risk_multiplier"`
}

// Monitor grades one account's drawdown against its daily loss limit.
// CAUTION starts past half the limit, WARNING past three quarters.
func Monitor(account string, currentDrawdown, dailyLimit float64) AccountDrawdown {
	percentOfLimit := 0.0
	if dailyLimit > 0 {
		percentOfLimit = currentDrawdown / dailyLimit
	}

	status := statusFor(percentOfLimit)
	return AccountDrawdown{
		Account:         account,
		CurrentDrawdown: currentDrawdown,
		DailyLimit:      dailyLimit,
		PercentOfLimit:  percentOfLimit,
		Status:          status,
		RiskMultiplier:  RecoveryMultiplier(status),
	}
}

func statusFor(percentOfLimit float64) DrawdownStatus {
	switch {
	case percentOfLimit > 0.75:
		return StatusWarning
	case percentOfLimit > 0.5:
		return StatusCaution
	default:
		return StatusOK
	}
}

// RecoveryMultiplier returns the fraction of normal per-trade risk to use
// while recovering from a drawdown. Accounts under CAUTION size down to
// three quarters, accounts under WARNING to half.
func RecoveryMultiplier(status DrawdownStatus) float64 {
	switch status {
	case StatusWarning:
		return 0.5
	case StatusCaution:
		return 0.75
	default:
		return 1.0
	}
}

// ClassifyCorrelation grades the average absolute strategy correlation.
// Below 0.3 strategies diversify well, below 0.6 they overlap some, and
// anything higher erodes the benefit of splitting capital across them.
func ClassifyCorrelation(averageAbsolute float64) CorrelationLevel {
	switch {
	case averageAbsolute < 0.3:
		return CorrelationLow
	case averageAbsolute < 0.6:
		return CorrelationModerate
	default:
		return CorrelationHigh
	}
}
