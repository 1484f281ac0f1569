package ctdf

import (
	"time"

	"github.com/travigo/trainboard/pkg/util"
	"golang.org/x/exp/slices"
)

// UnknownValue is stored in any Arrival field the feed did not provide
const UnknownValue = "Unknown"

// InvalidTimeValue replaces FormattedArrivalTime when the raw arrival time could not be parsed
const InvalidTimeValue = "Invalid Time"

const ArrivalTimeDisplayFormat = "Jan 02, 2006 - 03:04 PM"

const (
	ArrivalFieldRoute       = "route"
	ArrivalFieldStation     = "station"
	ArrivalFieldArrivalTime = "arrivaltime"
	ArrivalFieldDestination = "destination"
	ArrivalFieldTrainNumber = "trainnumber"
)

type Arrival struct {
	Route   string
	Station string

	RawArrivalTime       string
	ArrivalTime          *time.Time
	FormattedArrivalTime string

	Destination string
	TrainNumber string

	// Fields absent in the source record, distinguishes the UnknownValue sentinel from a real value
	MissingFields []string `json:",omitempty"`

	DataSource *DataSource `json:",omitempty"`
}

// ArrivalKey identifies the same train run across overlapping station queries
type ArrivalKey struct {
	TrainNumber string
	Route       string
	Destination string
}

func (a *Arrival) Key() ArrivalKey {
	return ArrivalKey{
		TrainNumber: a.TrainNumber,
		Route:       a.Route,
		Destination: a.Destination,
	}
}

func (a *Arrival) IsMissing(field string) bool {
	return slices.Contains(a.MissingFields, field)
}

// SetArrivalTime parses the raw feed timestamp, falling back to the invalid time marker
func (a *Arrival) SetArrivalTime(raw string, layout string, location *time.Location) {
	a.RawArrivalTime = raw

	arrivalTime, err := time.ParseInLocation(layout, raw, location)
	if err != nil {
		a.ArrivalTime = nil
		a.FormattedArrivalTime = InvalidTimeValue
		return
	}

	a.ArrivalTime = &arrivalTime
	a.FormattedArrivalTime = arrivalTime.Format(ArrivalTimeDisplayFormat)
}

// RemoveDuplicateArrivals keeps the first arrival seen for every ArrivalKey.
// The order of the input (station configuration order) decides which record survives.
func RemoveDuplicateArrivals(arrivals []*Arrival) []*Arrival {
	return util.RemoveDuplicatesBy(arrivals, func(a *Arrival) ArrivalKey {
		return a.Key()
	})
}
