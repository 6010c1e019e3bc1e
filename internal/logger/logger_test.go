package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/profile-matcher/internal/matching"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  profile_id  ", Value: "  p1  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "profile_id" || fields[0].String != "p1" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	enriched.Info("another log")
}

func TestWithProfileFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithProfileFields(zap.New(core), "candidate", "p1").Info("search")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProfileKind] != "candidate" || ctx[FieldProfileID] != "p1" {
		t.Fatalf("unexpected fields: %v", ctx)
	}

	if fields := ProfileFields("", ""); len(fields) != 0 {
		t.Fatalf("expected empty fields, got %d", len(fields))
	}
}

func TestMatchFields(t *testing.T) {
	fields := MatchFields("a1", &matching.Result{FinalScore: 80, SemanticSimilarity: 60})
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldSubjectID || fields[1].Integer != 80 || fields[2].Integer != 60 {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	if fields := MatchFields("a1", nil); len(fields) != 1 {
		t.Fatalf("expected only the subject field, got %d", len(fields))
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "returns empty when limit non-positive", input: "hello world", limit: 0, expect: ""},
		{name: "shorter than limit", input: "hello", limit: 10, expect: "hello"},
		{name: "truncates and adds ellipsis", input: "hello world", limit: 5, expect: "hello..."},
		{name: "counts runes", input: "привет мир", limit: 6, expect: "привет..."},
		{name: "trims surrounding whitespace", input: "  spaced  ", limit: 5, expect: "space..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
