package entity

// ChartPoint is one labelled value of the diagnosis chart series.
type ChartPoint struct {
	Label string `json:"label"` // Fixed severity channel label.
	Value int    `json:"value"` // Raw score; the display scale is a caller concern.
}

// ProjectedResult is the UI-ready view derived from a DiagnosisRecord.
// It is recomputed whenever the source record changes and never cached
// independently of it.
type ProjectedResult struct {
	ChartSeries     []ChartPoint `json:"chartSeries"`     // Exactly ScoreCount points in fixed semantic order.
	HeadTypeLabel   string       `json:"headTypeLabel"`   // Human label for the scalp classification code.
	ComparisonLabel string       `json:"comparisonLabel"` // Human label for the trend code.
}
