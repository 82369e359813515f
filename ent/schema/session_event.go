package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records a quiz session starting or ending.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("subject").
			NotEmpty(),
		field.Int("total_questions"),
		field.Int("questions_answered").
			Default(0).
			Comment("end only"),
		field.Int("score").
			Default(0).
			Comment("end only"),
		field.String("final_level").
			Default("").
			Comment("end only"),
		field.String("end_reason").
			Default("").
			Comment("completed, time_expired or quit"),
		field.Int("duration_secs").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("subject", "action"),
	}
}
