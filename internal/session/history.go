package session

import "slices"

// ScoreHistory maps topics to their results in completion order. It is
// append-only and not safe for concurrent use on its own; Learner
// serializes access.
type ScoreHistory struct {
	topics  []string
	results map[string][]string
}

// NewScoreHistory creates an empty history.
func NewScoreHistory() *ScoreHistory {
	return &ScoreHistory{results: make(map[string][]string)}
}

// Append adds a result for topic, creating its list if absent.
func (h *ScoreHistory) Append(topic, result string) {
	if _, ok := h.results[topic]; !ok {
		h.topics = append(h.topics, topic)
	}
	h.results[topic] = append(h.results[topic], result)
}

// Results returns a copy of topic's results.
func (h *ScoreHistory) Results(topic string) []string {
	return slices.Clone(h.results[topic])
}

// Topics returns topics in the order they were first recorded.
func (h *ScoreHistory) Topics() []string {
	return slices.Clone(h.topics)
}

// Len returns the number of topics with at least one result.
func (h *ScoreHistory) Len() int { return len(h.topics) }

// Clone returns a deep copy.
func (h *ScoreHistory) Clone() *ScoreHistory {
	c := NewScoreHistory()
	for _, t := range h.topics {
		c.topics = append(c.topics, t)
		c.results[t] = slices.Clone(h.results[t])
	}
	return c
}
