package knowledge

// Outcome tags the result of a content fetch.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeAmbiguous
	OutcomeTransient
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Fetcher.Fetch. Article is set for
// OutcomeOK, Candidates for OutcomeAmbiguous and Reason for OutcomeTransient.
type Result struct {
	Outcome    Outcome  `json:"outcome"`
	Article    Article  `json:"article"`
	Candidates []string `json:"candidates,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

// HasContent reports whether the result carries an article.
func (r Result) HasContent() bool {
	return r.Outcome == OutcomeOK
}

// cacheable reports whether the outcome is stable enough to cache.
// Transient failures never are.
func (r Result) cacheable() bool {
	return r.Outcome != OutcomeTransient
}
