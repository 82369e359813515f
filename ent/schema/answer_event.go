package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one submitted (or timed out) question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("question_id").
			NotEmpty(),
		field.String("subject"),
		field.String("level").
			Comment("Easy, Medium or Hard"),
		field.String("concept").
			Default(""),
		field.String("chosen").
			Default("").
			Comment("Empty when no answer was given"),
		field.String("correct_label"),
		field.Bool("correct"),
		field.String("stage").
			Comment("Selection stage that produced the question"),
		field.Int("time_ms"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
	}
}
