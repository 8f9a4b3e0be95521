package analysis

import "fmt"

// aggregateCAR sums abnormal returns over the post-event window for one
// horizon. The window starts the day after the event row and runs for at
// most window trading days, clipped to the end of the series. The realized
// window must cover at least coverage*window rows (tolerating holidays and
// other missing trading days); shorter windows are rejected rather than
// padded.
func aggregateCAR(r *AlignedReturns, eventLoc, window int, coverage float64) (float64, error) {
	start := eventLoc + 1
	end := start + window
	if end > r.Len() {
		end = r.Len()
	}

	if float64(end-start) < float64(window)*coverage {
		return 0, fmt.Errorf("%w for %d-day window: only %d points",
			ErrInsufficientPostEventWindow, window, end-start)
	}

	var car float64
	for i := start; i < end; i++ {
		car += r.Abnormal[i]
	}
	return car, nil
}
