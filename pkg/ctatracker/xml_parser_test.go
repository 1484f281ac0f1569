package ctatracker

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/trainboard/pkg/ctdf"
)

const chicagoArrivals = `<?xml version="1.0" encoding="utf-8"?>
<ctatt>
  <tmst>20241018 10:00:00</tmst>
  <errCd>0</errCd>
  <errNm />
  <eta>
    <staId>41450</staId>
    <staNm>Chicago</staNm>
    <rn>101</rn>
    <rt>Red</rt>
    <destNm>Howard</destNm>
    <prdt>20241018 10:00:00</prdt>
    <arrT>20241018 10:05:00</arrT>
    <isApp>0</isApp>
  </eta>
  <eta>
    <staNm>Chicago</staNm>
    <rn>420</rn>
    <rt>Brn</rt>
    <destNm>Kimball</destNm>
    <arrT>20241018 10:12:00</arrT>
  </eta>
</ctatt>`

func chicagoLocation(t *testing.T) *time.Location {
	location, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	return location
}

func TestParseArrivals(t *testing.T) {
	arrivals, err := ParseArrivals(strings.NewReader(chicagoArrivals), chicagoLocation(t))
	require.NoError(t, err)
	require.Len(t, arrivals, 2)

	red := arrivals[0]
	assert.Equal(t, "Red", red.Route)
	assert.Equal(t, "Chicago", red.Station)
	assert.Equal(t, "Howard", red.Destination)
	assert.Equal(t, "101", red.TrainNumber)
	assert.Equal(t, "20241018 10:05:00", red.RawArrivalTime)
	assert.Equal(t, "Oct 18, 2024 - 10:05 AM", red.FormattedArrivalTime)
	require.NotNil(t, red.ArrivalTime)
	assert.Equal(t, time.Date(2024, time.October, 18, 15, 5, 0, 0, time.UTC), red.ArrivalTime.UTC())
	assert.Empty(t, red.MissingFields)

	for _, value := range []string{red.Route, red.Station, red.Destination, red.TrainNumber, red.RawArrivalTime, red.FormattedArrivalTime} {
		assert.NotEqual(t, ctdf.UnknownValue, value)
	}

	assert.Equal(t, "Brn", arrivals[1].Route)
	assert.Equal(t, "420", arrivals[1].TrainNumber)
}

func TestParseArrivalsMissingFields(t *testing.T) {
	document := `<ctatt><eta><rt>P</rt><arrT>20241018 10:05:00</arrT><destNm></destNm></eta></ctatt>`

	arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)
	require.NoError(t, err)
	require.Len(t, arrivals, 1)

	arrival := arrivals[0]
	assert.Equal(t, "P", arrival.Route)
	assert.Equal(t, ctdf.UnknownValue, arrival.Station)
	assert.Equal(t, ctdf.UnknownValue, arrival.Destination)
	assert.Equal(t, ctdf.UnknownValue, arrival.TrainNumber)
	assert.NotNil(t, arrival.ArrivalTime)

	assert.True(t, arrival.IsMissing(ctdf.ArrivalFieldStation))
	assert.True(t, arrival.IsMissing(ctdf.ArrivalFieldDestination))
	assert.True(t, arrival.IsMissing(ctdf.ArrivalFieldTrainNumber))
	assert.False(t, arrival.IsMissing(ctdf.ArrivalFieldRoute))
}

func TestParseArrivalsInvalidTime(t *testing.T) {
	cases := []string{
		`<ctatt><eta><rt>Red</rt><rn>1</rn><arrT>2024-10-18T10:05:00</arrT></eta></ctatt>`,
		`<ctatt><eta><rt>Red</rt><rn>1</rn><arrT>20241318 10:05:00</arrT></eta></ctatt>`,
		`<ctatt><eta><rt>Red</rt><rn>1</rn></eta></ctatt>`,
	}

	for _, document := range cases {
		arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)
		require.NoError(t, err)
		require.Len(t, arrivals, 1)

		assert.Nil(t, arrivals[0].ArrivalTime)
		assert.Equal(t, ctdf.InvalidTimeValue, arrivals[0].FormattedArrivalTime)
	}
}

func TestParseArrivalsNestedElements(t *testing.T) {
	document := `<response><ctatt><eta><rt>Red</rt></eta><group><eta><rt>Brn</rt></eta></group></ctatt></response>`

	arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)
	require.NoError(t, err)
	require.Len(t, arrivals, 2)

	assert.Equal(t, "Red", arrivals[0].Route)
	assert.Equal(t, "Brn", arrivals[1].Route)
}

func TestParseArrivalsNoArrivals(t *testing.T) {
	document := `<ctatt><tmst>20241018 10:00:00</tmst><errCd>0</errCd><errNm/></ctatt>`

	arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, arrivals)
}

func TestParseArrivalsAPIError(t *testing.T) {
	document := `<ctatt><tmst>20241018 10:00:00</tmst><errCd>101</errCd><errNm>Invalid API key</errNm></ctatt>`

	arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, arrivals)
}

func TestParseArrivalsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not xml at all",
		`<ctatt><eta><rt>Red</rt></eta>`,
		`<ctatt><eta><rt>Red</eta></ctatt>`,
	}

	for _, document := range cases {
		arrivals, err := ParseArrivals(strings.NewReader(document), time.UTC)

		assert.ErrorIs(t, err, ErrMalformedDocument, "document %q", document)
		assert.Nil(t, arrivals)
	}
}

func TestParseArrivalsCharset(t *testing.T) {
	var document bytes.Buffer
	document.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><ctatt><eta><staNm>Caf`)
	document.WriteByte(0xe9)
	document.WriteString(`</staNm><rt>Red</rt></eta></ctatt>`)

	arrivals, err := ParseArrivals(&document, time.UTC)
	require.NoError(t, err)
	require.Len(t, arrivals, 1)

	assert.Equal(t, "Café", arrivals[0].Station)
}
