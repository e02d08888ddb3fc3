// Package schema declares the tables the store writes. The store builds
// its SQL by hand; these declarations are the reference its DDL is checked
// against.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin provides the fields shared by all event types: a global
// sequence number and an epoch-millisecond timestamp.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Monotonically increasing global sequence number"),
		field.Int64("timestamp_ms").
			Immutable().
			Comment("UTC wall-clock time of the event in epoch milliseconds"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}

// Tables maps each table name to its schema.
func Tables() map[string]ent.Interface {
	return map[string]ent.Interface{
		"snapshots":          Snapshot{},
		"answer_events":      AnswerEvent{},
		"session_events":     SessionEvent{},
		"llm_request_events": LLMRequestEvent{},
	}
}

// Columns lists the column names of s, mixin fields first, without the
// implicit id.
func Columns(s ent.Interface) []string {
	var cols []string
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			cols = append(cols, f.Descriptor().Name)
		}
	}
	for _, f := range s.Fields() {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}
