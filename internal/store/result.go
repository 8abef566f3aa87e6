package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const quizResultsTable = "quiz_results"

type resultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *resultRepo) Record(ctx context.Context, res QuizResult) error {
	if res.Topic == "" {
		return fmt.Errorf("record quiz result: empty topic")
	}
	if res.Score < 0 || res.Score > res.Total {
		return fmt.Errorf("record quiz result: score %d out of range for %d questions", res.Score, res.Total)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	at := res.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(quizResultsTable).
		Columns("sequence", "session_id", "topic", "score", "total", "completed_at").
		Values(seqNum, res.SessionID, res.Topic, res.Score, res.Total, at.UnixMilli()).
		Query()

	var sr sql.Result
	if err := r.drv.Exec(ctx, query, args, &sr); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *resultRepo) History(ctx context.Context, topic string, limit int) ([]QuizResult, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "session_id", "topic", "score", "total", "completed_at").
		From(entsql.Table(quizResultsTable))
	if topic != "" {
		sel.Where(entsql.EQ("topic", topic))
	}
	// A limit keeps the newest rows; they are reversed back below.
	if limit > 0 {
		sel.OrderBy(entsql.Desc("sequence")).Limit(limit)
	} else {
		sel.OrderBy("sequence")
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query quiz history: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var (
			q  QuizResult
			at int64
		)
		if err := rows.Scan(&q.ID, &q.Sequence, &q.SessionID, &q.Topic, &q.Score, &q.Total, &at); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		q.CompletedAt = time.UnixMilli(at).UTC()
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 {
		slices.Reverse(out)
	}
	return out, nil
}

func (r *resultRepo) Topics(ctx context.Context) ([]string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("topic", entsql.As(entsql.Min("sequence"), "first_seq")).
		From(entsql.Table(quizResultsTable)).
		GroupBy("topic").
		OrderBy("first_seq").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var (
			topic string
			first int64
		)
		if err := rows.Scan(&topic, &first); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, topic)
	}
	return out, rows.Err()
}

func formatScore(score, total int) string {
	return strconv.Itoa(score) + "/" + strconv.Itoa(total)
}
