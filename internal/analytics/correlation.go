package analytics

import "math"

// CorrelationMatrix represents pairwise Pearson correlations between
// strategies' daily P&L series. Values is symmetric with a unit diagonal;
// an off-diagonal cell is NaN when either column has zero variance, since
// "undefined" and "no correlation" are different answers.
type CorrelationMatrix struct {
	Strategies []string    `json:"strategies"`
	Values     [][]float64 `json:"values"`
}

// At returns the correlation between two strategies by label, and whether
// both labels are present in the matrix
func (m CorrelationMatrix) At(a, b string) (float64, bool) {
	ai, bi := -1, -1
	for i, label := range m.Strategies {
		if label == a {
			ai = i
		}
		if label == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return 0, false
	}
	return m.Values[ai][bi], true
}

// StrategyCorrelations aligns all strategies' daily series on the union of
// their dates (missing days fill as 0) and computes the pairwise Pearson
// correlation matrix plus the mean absolute correlation over distinct pairs.
// A NaN pair propagates into the average rather than being coerced to 0.
func StrategyCorrelations(series map[string]DailySeries) (CorrelationMatrix, float64) {
	labels, columns := alignedColumns(series)
	matrix := CorrelationMatrix{
		Strategies: labels,
		Values:     make([][]float64, len(labels)),
	}
	for i := range matrix.Values {
		matrix.Values[i] = make([]float64, len(labels))
		matrix.Values[i][i] = 1
	}

	pairSum := 0.0
	pairs := 0
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			corr := pearson(columns[i], columns[j])
			matrix.Values[i][j] = corr
			matrix.Values[j][i] = corr
			pairSum += math.Abs(corr)
			pairs++
		}
	}
	if pairs == 0 {
		return matrix, 0
	}
	return matrix, pairSum / float64(pairs)
}

// pearson returns the Pearson correlation coefficient of two equal-length
// columns, or NaN when either column has zero variance
func pearson(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return math.NaN()
	}
	meanX := mean(x)
	meanY := mean(y)
	covariance := 0.0
	varX := 0.0
	varY := 0.0
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		covariance += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return covariance / math.Sqrt(varX*varY)
}
