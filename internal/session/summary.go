package session

// Summary holds the data displayed when a quiz completes.
type Summary struct {
	Topic    string
	Score    int
	Total    int
	Accuracy float64
	Result   string
}

// BuildSummary creates a Summary from a session snapshot.
func BuildSummary(s QuizSession) Summary {
	var accuracy float64
	if s.Total() > 0 {
		accuracy = float64(s.Score) / float64(s.Total())
	}
	return Summary{
		Topic:    s.Topic,
		Score:    s.Score,
		Total:    s.Total(),
		Accuracy: accuracy,
		Result:   s.Result(),
	}
}
