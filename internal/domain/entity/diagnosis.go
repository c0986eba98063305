package entity

// ScoreCount is the fixed length of a diagnosis score vector. The semantic
// order of the indexes is fixed by the AI model: hair loss, dandruff,
// inflammation, redness, sebum, keratin.
const ScoreCount = 6

// ScoreMax is the upper bound of a single severity score.
const ScoreMax = 3

// DiagnosisRecord is the raw per-diagnosis shape returned by the backend.
type DiagnosisRecord struct {
	ID            int64  `json:"id"`            // Backend identifier of the diagnosis.
	Date          string `json:"date"`          // Diagnosis timestamp as formatted by the backend.
	ImageURL      string `json:"img"`           // URL of the submitted scalp photo.
	Result        []int  `json:"result"`        // Severity scores in fixed semantic order; see ScoreCount.
	HeadType      int    `json:"headType"`      // Scalp classification code from the AI model.
	Comparison    int    `json:"comparison"`    // Trend code against the previous diagnosis.
	ManageComment string `json:"manageComment"` // Optional care advice. Empty when the backend has none.
}

// Score returns the severity at index i, treating missing entries as zero so
// a short or absent vector never breaks rendering.
func (r *DiagnosisRecord) Score(i int) int {
	if r == nil || i < 0 || i >= len(r.Result) {
		return 0
	}

	return r.Result[i]
}

// ReportSummary is one row of the diagnosis history list.
type ReportSummary struct {
	Idx       int64  `json:"idx"`       // Backend identifier, used to fetch the detail record.
	Date      string `json:"date"`      // Diagnosis date.
	Diagnosis string `json:"diagnosis"` // Short diagnosis summary text.
}

// DiaryType selects which scalp region a diary photo belongs to.
type DiaryType string

const (
	// DiaryLine is the hairline region.
	DiaryLine DiaryType = "line"

	// DiaryTop is the crown region.
	DiaryTop DiaryType = "top"
)

// Valid reports whether the diary type is one of the two known regions.
func (t DiaryType) Valid() bool {
	return t == DiaryLine || t == DiaryTop
}

// DiaryEntry is one photo in a per-region diary.
type DiaryEntry struct {
	ImageURL string `json:"img"`     // Bare URL of the stored photo.
	RegDate  string `json:"regDate"` // Date the photo was registered.
}
