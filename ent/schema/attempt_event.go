package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records a single answered question within a session.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("user_id").
			NotEmpty(),
		field.String("opening_id").
			NotEmpty().
			Comment("Opening line this question probed"),
		field.String("prompt").
			NotEmpty().
			Comment("The line prefix shown"),
		field.String("correct_move").
			NotEmpty(),
		field.String("learner_move").
			Comment("What the learner answered; empty on timeout"),
		field.Bool("correct"),
		field.Int("time_ms").
			Comment("Milliseconds to answer"),
		field.Float("difficulty").
			Comment("Session difficulty when asked"),
		field.String("format").
			NotEmpty().
			Comment("multiple_choice or typed"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("opening_id"),
		index.Fields("correct"),
	}
}
