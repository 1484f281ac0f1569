package config

import "github.com/travigo/trainboard/pkg/ctdf"

const DefaultFeedURL = "http://lapi.transitchicago.com/api/1.0/ttarrivals.aspx"
const DefaultTimezone = "America/Chicago"
const DefaultRefreshInterval = "PT1M"

// The reference deployment: Brown, Red & Purple lines through the Loop
var DefaultStations = []ctdf.Station{
	{Name: "Brown Line (Chicago)", MapID: "40710"},
	{Name: "Red Line (Chicago/State)", MapID: "41450"},
	{Name: "Purple Line (Chicago)", MapID: "40710"},
}

var DefaultLines = []ctdf.Line{
	{
		Code:       "Brn",
		Name:       "Brown Line",
		Colour:     "#63361c",
		Directions: []string{"Kimball", "Loop"},
	},
	{
		Code:       "Red",
		Name:       "Red Line",
		Colour:     "red",
		Directions: []string{"Howard", "95th/Dan Ryan"},
	},
	{
		Code:       "P",
		Name:       "Purple Line",
		Colour:     "purple",
		Directions: []string{"Linden", "Loop"},
	},
}
