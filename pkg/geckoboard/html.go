package geckoboard

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/trainboard/pkg/ctdf"
)

const NoTrainsText = "No trains"
const NoArrivalTimeText = "N/A"

// Hex, rgb(a), hsl(a) or a named colour. Must match the Line.Colour validate tag.
const colourValidation = "required,iscolor|alpha"

var validate = validator.New()

var lineTemplate = template.Must(template.New("line").Parse(
	`<div style='font-family: Arial, sans-serif;'>` +
		`{{- range .Directions -}}` +
		`<h2 style='color: {{ $.Colour }}; font-weight: bold; font-size: 40px;'>{{ $.Name }} - {{ .Name }}</h2>` +
		`<table style='width: 100%; border-collapse: collapse; text-align: left;'>` +
		`<thead><tr>` +
		`<th style='padding: 10px; font-size: 30px; border-bottom: 2px solid #ddd;'>Train #</th>` +
		`<th style='padding: 10px; font-size: 30px; border-bottom: 2px solid #ddd;'>Arrival Time</th>` +
		`</tr></thead>` +
		`<tbody>` +
		`{{- range .Arrivals -}}` +
		`<tr><td style='padding: 10px; font-size: 30px;'>{{ .TrainNumber }}</td><td style='padding: 10px; font-size: 30px;'>{{ .FormattedArrivalTime }}</td></tr>` +
		`{{- else -}}` +
		`<tr><td style='padding: 10px; font-size: 30px;'>{{ $.NoTrainsText }}</td><td style='padding: 10px; font-size: 30px;'>{{ $.NoArrivalTimeText }}</td></tr>` +
		`{{- end -}}` +
		`</tbody></table><br>` +
		`{{- end -}}` +
		`</div>`,
))

type directionView struct {
	Name     string
	Arrivals []*ctdf.Arrival
}

type lineView struct {
	Name   string
	Colour template.CSS

	Directions []directionView

	NoTrainsText      string
	NoArrivalTimeText string
}

// RenderLine builds the widget HTML for a line. Every configured direction gets a heading and
// table even when the feed had nothing for it.
func RenderLine(line ctdf.Line, grouped ctdf.GroupedArrivals) (string, error) {
	if err := validate.Var(line.Colour, colourValidation); err != nil {
		return "", fmt.Errorf("line %s has invalid colour %q: %w", line.Code, line.Colour, err)
	}

	view := lineView{
		Name:              line.Name,
		Colour:            template.CSS(line.Colour),
		NoTrainsText:      NoTrainsText,
		NoArrivalTimeText: NoArrivalTimeText,
	}

	for _, direction := range line.Directions {
		view.Directions = append(view.Directions, directionView{
			Name:     direction,
			Arrivals: grouped.Direction(direction),
		})
	}

	var html strings.Builder
	if err := lineTemplate.Execute(&html, view); err != nil {
		return "", err
	}

	return html.String(), nil
}
