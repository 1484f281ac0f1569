package ctdf

import (
	"time"

	"github.com/travigo/trainboard/pkg/util"
	"golang.org/x/exp/slices"
)

const MaxArrivalsPerDirection = 5

// GroupedArrivals maps a destination to its upcoming arrivals.
// A destination with no arrivals has no key.
type GroupedArrivals map[string][]*Arrival

func (g GroupedArrivals) Direction(destination string) []*Arrival {
	return g[destination]
}

// GroupArrivalsByDirection filters the arrivals for a route and splits them per destination,
// each direction ordered by arrival time and cut to MaxArrivalsPerDirection
func GroupArrivalsByDirection(arrivals []*Arrival, route string) GroupedArrivals {
	grouped := GroupedArrivals{}

	routeArrivals := util.Filter(arrivals, func(a *Arrival) bool {
		return a.Route == route
	})

	for _, arrival := range routeArrivals {
		grouped[arrival.Destination] = append(grouped[arrival.Destination], arrival)
	}

	for destination, directionArrivals := range grouped {
		slices.SortStableFunc(directionArrivals, compareArrivalTimes)

		if len(directionArrivals) > MaxArrivalsPerDirection {
			directionArrivals = directionArrivals[:MaxArrivalsPerDirection]
		}

		grouped[destination] = directionArrivals
	}

	return grouped
}

// Arrivals without a parsed time are treated as the latest possible time
func compareArrivalTimes(a, b *Arrival) int {
	return sortableArrivalTime(a).Compare(sortableArrivalTime(b))
}

var maxArrivalTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func sortableArrivalTime(a *Arrival) time.Time {
	if a.ArrivalTime == nil {
		return maxArrivalTime
	}

	return *a.ArrivalTime
}
