package deck

// Question is a validated multiple-choice record with shuffled options.
//
// CorrectIndex always points into Options after shuffling; the position the
// answer had in the source row is not kept.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Rejection describes a source row that was dropped during loading.
type Rejection struct {
	Line   int
	Reason string
}

// Result holds the accepted questions in source order and the rejected rows.
type Result struct {
	Questions []Question
	Rejected  []Rejection
}
