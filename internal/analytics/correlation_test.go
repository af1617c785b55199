package analytics

import (
	"math"
	"testing"
)

func TestStrategyCorrelationsSymmetryAndDiagonal(t *testing.T) {
	series := map[string]DailySeries{
		"Hourly Quarters": {{Date: day(1), PnL: 100}, {Date: day(2), PnL: -50}, {Date: day(3), PnL: 75}},
		"930 Strategy":    {{Date: day(1), PnL: -20}, {Date: day(2), PnL: 60}, {Date: day(3), PnL: -10}},
		"Lab Strategy":    {{Date: day(1), PnL: 30}, {Date: day(2), PnL: 45}, {Date: day(3), PnL: -80}},
	}
	matrix, _ := StrategyCorrelations(series)
	if len(matrix.Strategies) != 3 {
		t.Fatalf("expected 3 strategies, got %d", len(matrix.Strategies))
	}
	for i := range matrix.Values {
		if matrix.Values[i][i] != 1 {
			t.Errorf("expected unit diagonal at %d, got %v", i, matrix.Values[i][i])
		}
		for j := range matrix.Values {
			if matrix.Values[i][j] != matrix.Values[j][i] {
				t.Errorf("expected symmetry at (%d,%d)", i, j)
			}
			if matrix.Values[i][j] < -1-1e-9 || matrix.Values[i][j] > 1+1e-9 {
				t.Errorf("correlation out of range at (%d,%d): %v", i, j, matrix.Values[i][j])
			}
		}
	}
}

func TestStrategyCorrelationsPerfectPositive(t *testing.T) {
	series := map[string]DailySeries{
		"A": {{Date: day(1), PnL: 10}, {Date: day(2), PnL: 20}, {Date: day(3), PnL: 30}},
		"B": {{Date: day(1), PnL: 1}, {Date: day(2), PnL: 2}, {Date: day(3), PnL: 3}},
	}
	matrix, avg := StrategyCorrelations(series)
	corr, ok := matrix.At("A", "B")
	if !ok {
		t.Fatal("expected both strategies in the matrix")
	}
	if math.Abs(corr-1) > 1e-9 {
		t.Errorf("expected correlation 1, got %v", corr)
	}
	if math.Abs(avg-1) > 1e-9 {
		t.Errorf("expected average 1, got %v", avg)
	}
}

func TestStrategyCorrelationsOuterJoinZeroFill(t *testing.T) {
	// B has no record on day 2; the join fills 0, which breaks the perfect
	// correlation A would otherwise have with itself.
	series := map[string]DailySeries{
		"A": {{Date: day(1), PnL: 10}, {Date: day(2), PnL: 20}, {Date: day(3), PnL: 30}},
		"B": {{Date: day(1), PnL: 10}, {Date: day(3), PnL: 30}},
	}
	matrix, _ := StrategyCorrelations(series)
	corr, _ := matrix.At("A", "B")
	if math.IsNaN(corr) {
		t.Fatal("expected defined correlation after zero fill")
	}
	if math.Abs(corr-1) < 1e-9 {
		t.Fatalf("expected correlation below 1 after zero fill, got %v", corr)
	}
}

func TestStrategyCorrelationsZeroVarianceIsNaN(t *testing.T) {
	series := map[string]DailySeries{
		"A": {{Date: day(1), PnL: 10}, {Date: day(2), PnL: -20}},
		"B": {{Date: day(1), PnL: 5}, {Date: day(2), PnL: 15}},
		"C": {{Date: day(1), PnL: 0}, {Date: day(2), PnL: 0}},
	}
	matrix, avg := StrategyCorrelations(series)
	corrAC, _ := matrix.At("A", "C")
	corrBC, _ := matrix.At("B", "C")
	if !math.IsNaN(corrAC) || !math.IsNaN(corrBC) {
		t.Fatalf("expected NaN for zero-variance strategy, got %v and %v", corrAC, corrBC)
	}
	corrAB, _ := matrix.At("A", "B")
	if math.IsNaN(corrAB) {
		t.Fatal("expected defined correlation between varying strategies")
	}
	if !math.IsNaN(avg) {
		t.Fatalf("expected undefined pairs to propagate into the average, got %v", avg)
	}
	// The diagonal stays 1 even for the constant column.
	corrCC, _ := matrix.At("C", "C")
	if corrCC != 1 {
		t.Fatalf("expected unit diagonal for constant column, got %v", corrCC)
	}
}

func TestStrategyCorrelationsSingleStrategy(t *testing.T) {
	series := map[string]DailySeries{
		"A": {{Date: day(1), PnL: 10}},
	}
	matrix, avg := StrategyCorrelations(series)
	if len(matrix.Strategies) != 1 || matrix.Values[0][0] != 1 {
		t.Fatalf("expected trivial 1x1 matrix, got %+v", matrix)
	}
	if avg != 0 {
		t.Fatalf("expected average 0 with no pairs, got %v", avg)
	}
}
