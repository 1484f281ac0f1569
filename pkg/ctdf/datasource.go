package ctdf

type DataSource struct {
	OriginalFormat string // eg. cta-xml
	Provider       string
	Dataset        string
	Identifier     string
}
