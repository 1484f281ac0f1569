package ctatracker

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/trainboard/pkg/ctdf"
	"golang.org/x/net/html/charset"
)

const ArrivalTimeFormat = "20060102 15:04:05"

var ErrMalformedDocument = errors.New("malformed arrivals document")

// ETA is a single arrival prediction in the Train Tracker arrivals document
type ETA struct {
	Route           *string `xml:"rt"`
	StationName     *string `xml:"staNm"`
	ArrivalTime     *string `xml:"arrT"`
	DestinationName *string `xml:"destNm"`
	RunNumber       *string `xml:"rn"`
}

func (e *ETA) ToArrival(location *time.Location) *ctdf.Arrival {
	arrival := &ctdf.Arrival{}

	readField := func(value *string, field string) string {
		if value == nil || strings.TrimSpace(*value) == "" {
			arrival.MissingFields = append(arrival.MissingFields, field)
			return ctdf.UnknownValue
		}

		return strings.TrimSpace(*value)
	}

	arrival.Route = readField(e.Route, ctdf.ArrivalFieldRoute)
	arrival.Station = readField(e.StationName, ctdf.ArrivalFieldStation)
	arrival.Destination = readField(e.DestinationName, ctdf.ArrivalFieldDestination)
	arrival.TrainNumber = readField(e.RunNumber, ctdf.ArrivalFieldTrainNumber)
	arrival.SetArrivalTime(readField(e.ArrivalTime, ctdf.ArrivalFieldArrivalTime), ArrivalTimeFormat, location)

	return arrival
}

// ParseArrivals decodes every eta element in the document, wherever it is nested.
// Bad timestamps never fail the parse, only a broken document does.
func ParseArrivals(reader io.Reader, location *time.Location) ([]*ctdf.Arrival, error) {
	var arrivals []*ctdf.Arrival
	var errorCode, errorName string
	seenRoot := false

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		ty, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seenRoot = true

		switch ty.Name.Local {
		case "eta":
			var eta ETA
			if err := d.DecodeElement(&eta, &ty); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}

			arrivals = append(arrivals, eta.ToArrival(location))
		case "errCd":
			if err := d.DecodeElement(&errorCode, &ty); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
		case "errNm":
			if err := d.DecodeElement(&errorName, &ty); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	if errorCode = strings.TrimSpace(errorCode); errorCode != "" && errorCode != "0" {
		log.Warn().Str("code", errorCode).Str("error", errorName).Msg("Arrivals API reported an error")
	}

	return arrivals, nil
}
