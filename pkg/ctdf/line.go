package ctdf

// Line is a transit line shown on its own dashboard widget
type Line struct {
	Code   string `yaml:"code" json:"code" validate:"required"`
	Name   string `yaml:"name" json:"name" validate:"required"`
	Colour string `yaml:"colour" json:"colour" validate:"required,iscolor|alpha"`

	WidgetURL string `yaml:"widgeturl" json:"-" validate:"omitempty,url"`

	// Directions always rendered for the line, in display order
	Directions []string `yaml:"directions" json:"directions" validate:"min=1,dive,required"`
}

type Station struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	MapID string `yaml:"mapid" json:"mapid" validate:"required,numeric"`
}
