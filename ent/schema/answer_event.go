package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded answer within a drill.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("item_id").
			NotEmpty().
			Comment("Learning item the question was for"),
		field.String("category").
			Default("").
			Comment("Words or Phrasal Verbs"),
		field.String("mode").
			Default("").
			Comment("term_to_meaning or meaning_to_term"),
		field.String("prompt").
			Default("").
			Comment("The term or meaning shown"),
		field.String("correct_answer").
			Default(""),
		field.String("learner_answer").
			Default("").
			Comment("The option the learner picked"),
		field.Bool("correct"),
		field.Int("box_before").
			Comment("Leitner box before the answer"),
		field.Int("box_after").
			Comment("Leitner box after the answer"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("item_id"),
	}
}
