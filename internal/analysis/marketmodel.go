package analysis

import (
	"fmt"
	"math"
)

// marketModel holds fitted single-factor regression coefficients:
// stockReturn = alpha + beta*marketReturn.
type marketModel struct {
	Alpha float64
	Beta  float64
}

// Variance below this is treated as a constant regressor
const degenerateVarianceEps = 1e-12

// fitMarketModel fits the market model by ordinary least squares over the
// pre-event rows [0, estimationEnd). Rows at or beyond estimationEnd are
// never touched: including the event window would introduce look-ahead bias.
// Fails if the estimation sample is shorter than minRows or the market
// return is constant over it.
func fitMarketModel(r *AlignedReturns, estimationEnd, minRows int) (marketModel, error) {
	if estimationEnd < minRows {
		return marketModel{}, fmt.Errorf("%w: only %d points, need %d",
			ErrInsufficientEstimationWindow, estimationEnd, minRows)
	}

	n := float64(estimationEnd)
	var sumX, sumY float64
	for i := 0; i < estimationEnd; i++ {
		sumX += r.Market[i]
		sumY += r.Stock[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for i := 0; i < estimationEnd; i++ {
		dx := r.Market[i] - meanX
		sxx += dx * dx
		sxy += dx * (r.Stock[i] - meanY)
	}

	if sxx/n < degenerateVarianceEps || math.IsNaN(sxx) {
		return marketModel{}, ErrDegenerateMarketModel
	}

	beta := sxy / sxx
	alpha := meanY - beta*meanX
	return marketModel{Alpha: alpha, Beta: beta}, nil
}

// score applies the fitted coefficients to every row of the aligned series,
// estimation and post-event alike, filling Expected and Abnormal in place.
func (m marketModel) score(r *AlignedReturns) {
	n := r.Len()
	r.Expected = make([]float64, n)
	r.Abnormal = make([]float64, n)
	for i := 0; i < n; i++ {
		r.Expected[i] = m.Alpha + m.Beta*r.Market[i]
		r.Abnormal[i] = r.Stock[i] - r.Expected[i]
	}
}
