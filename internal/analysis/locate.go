package analysis

import (
	"fmt"
	"sort"
	"time"
)

// locateEvent returns the index of the first aligned-return row whose date is
// on or after the event date. This row is "day 0" for the event; estimation
// and CAR windows are anchored to it. Fails if every trading day in the
// series precedes the event.
func locateEvent(dates []time.Time, eventDate time.Time) (int, error) {
	i := sort.Search(len(dates), func(j int) bool {
		return !dates[j].Before(eventDate)
	})
	if i == len(dates) {
		return 0, fmt.Errorf("%w %s", ErrNoTradingDayFound, eventDate.Format("2006-01-02"))
	}
	return i, nil
}

// estimationBound returns the exclusive upper bound of the pre-event
// estimation window. Fails if the event sits at the start of the series and
// no pre-event rows exist.
func estimationBound(eventLoc int) (int, error) {
	end := eventLoc - 1
	if end <= 0 {
		return 0, ErrNoPreEventWindow
	}
	return end, nil
}
