package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// QuizResult is one completed quiz attempt.
type QuizResult struct {
	ID          int
	Sequence    int64
	SessionID   string
	Topic       string
	Score       int
	Total       int
	CompletedAt time.Time
}

// Display formats the result as "<score>/<total>".
func (r QuizResult) Display() string {
	return formatScore(r.Score, r.Total)
}

// ResultRepo persists completed quiz attempts across runs.
type ResultRepo interface {
	Record(ctx context.Context, r QuizResult) error

	// History returns results in completion order. An empty topic returns
	// every topic; a positive limit keeps only the newest limit results.
	History(ctx context.Context, topic string, limit int) ([]QuizResult, error)

	// Topics returns distinct topics in order of first completion.
	Topics(ctx context.Context) ([]string, error)
}
