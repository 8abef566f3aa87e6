package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizResult records one completed quiz. Stored in quiz_results.
type QuizResult struct {
	ent.Schema
}

func (QuizResult) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Immutable(),
		field.String("session_id").
			NotEmpty().
			Comment("Learner session that produced the result"),
		field.String("topic").
			NotEmpty().
			Comment("Article title the quiz was built from"),
		field.Int("score").
			NonNegative(),
		field.Int("total").
			Positive(),
		field.Time("completed_at").
			Immutable(),
	}
}

func (QuizResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("topic", "sequence"),
	}
}
