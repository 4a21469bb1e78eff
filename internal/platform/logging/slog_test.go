package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSlog_ForwardsRecordsToZap(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewSlog(FromZap(zap.New(core)))

	logger.Info("match finalized", "match_id", "m-1")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "match finalized" {
		t.Fatalf("unexpected message: %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != "m-1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestNewSlog_WithAttrsAndGroups(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewSlog(FromZap(zap.New(core))).With("service", "interclub").WithGroup("db")

	logger.Warn("slow query", "elapsed_ms", int64(120))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != "interclub" {
		t.Fatalf("expected ungrouped attr, got %v", fields)
	}
	if fields["db.elapsed_ms"] != int64(120) {
		t.Fatalf("expected grouped attr, got %v", fields)
	}
}

func TestNewSlog_RespectsLevel(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	logger := NewSlog(FromZap(zap.New(core)))

	logger.Debug("ignored")
	logger.Error("kept")

	if got := observed.Len(); got != 1 {
		t.Fatalf("expected only error entry, got %d", got)
	}
}
