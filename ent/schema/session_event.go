package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records drill lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a drill"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("category").
			Default(""),
		field.String("mode").
			Default(""),
		field.Int("questions_served").
			Default(0).
			Comment("Queue length on start, questions answered on end"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Int("mastered_count").
			Default(0).
			Comment("Items promoted to the last box (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Drill duration in seconds (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
