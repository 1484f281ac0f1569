package ctdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArrival(trainNumber string, route string, destination string, station string) *Arrival {
	return &Arrival{
		Route:                route,
		Station:              station,
		RawArrivalTime:       UnknownValue,
		FormattedArrivalTime: InvalidTimeValue,
		Destination:          destination,
		TrainNumber:          trainNumber,
	}
}

func TestRemoveDuplicateArrivalsFirstWins(t *testing.T) {
	arrivals := []*Arrival{
		newArrival("101", "Red", "Howard", "Chicago/State"),
		newArrival("420", "Brn", "Kimball", "Chicago"),
		newArrival("101", "Red", "Howard", "Chicago"),
		newArrival("101", "Red", "95th/Dan Ryan", "Chicago"),
	}

	result := RemoveDuplicateArrivals(arrivals)

	require.Len(t, result, 3)
	assert.Same(t, arrivals[0], result[0])
	assert.Same(t, arrivals[1], result[1])
	assert.Same(t, arrivals[3], result[2])
	assert.Equal(t, "Chicago/State", result[0].Station)
}

func TestRemoveDuplicateArrivalsUniqueKeys(t *testing.T) {
	routes := []string{"Red", "Brn", "P"}
	destinations := []string{"Howard", "Loop", "Kimball"}

	var arrivals []*Arrival
	for i := 0; i < 60; i++ {
		arrivals = append(arrivals, newArrival(
			string(rune('0'+i%4)),
			routes[i%3],
			destinations[i%2],
			"Station",
		))
	}

	result := RemoveDuplicateArrivals(arrivals)

	seen := map[ArrivalKey]bool{}
	for _, arrival := range result {
		assert.False(t, seen[arrival.Key()], "duplicate key %v", arrival.Key())
		seen[arrival.Key()] = true
	}

	assert.Equal(t, result, RemoveDuplicateArrivals(result))
}

func TestRemoveDuplicateArrivalsIgnoresTimestamp(t *testing.T) {
	first := newArrival("101", "Red", "Howard", "A")
	first.SetArrivalTime("20241018 10:05:00", "20060102 15:04:05", time.UTC)
	second := newArrival("101", "Red", "Howard", "B")
	second.SetArrivalTime("20241018 10:09:00", "20060102 15:04:05", time.UTC)

	result := RemoveDuplicateArrivals([]*Arrival{first, second})

	require.Len(t, result, 1)
	assert.Equal(t, "20241018 10:05:00", result[0].RawArrivalTime)
}

func TestSetArrivalTime(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	arrival := &Arrival{}
	arrival.SetArrivalTime("20241018 14:05:00", "20060102 15:04:05", chicago)

	require.NotNil(t, arrival.ArrivalTime)
	assert.Equal(t, "Oct 18, 2024 - 02:05 PM", arrival.FormattedArrivalTime)
	assert.Equal(t, chicago, arrival.ArrivalTime.Location())

	arrival.SetArrivalTime("not a time", "20060102 15:04:05", chicago)

	assert.Nil(t, arrival.ArrivalTime)
	assert.Equal(t, InvalidTimeValue, arrival.FormattedArrivalTime)
	assert.Equal(t, "not a time", arrival.RawArrivalTime)
}

func TestIsMissing(t *testing.T) {
	arrival := &Arrival{MissingFields: []string{ArrivalFieldRoute}}

	assert.True(t, arrival.IsMissing(ArrivalFieldRoute))
	assert.False(t, arrival.IsMissing(ArrivalFieldDestination))
}
