package authz

import (
	"context"
	"log/slog"

	"tally/internal/domain/models"
)

// Stage labels the lifecycle point of an audit entry.
type Stage string

const (
	StageRequest Stage = "REQUEST"
	StageAllow   Stage = "ALLOW"
	StageDeny    Stage = "DENY"
)

// Entry is a single structured decision record. Humans debugging access
// issues rely entirely on these records, so every deny path must carry a
// distinct, stable reason string.
type Entry struct {
	RequestID   string
	Stage       Stage
	Operation   string
	CallerID    string
	Reason      string
	Role        models.Role
	ChecklistID string
	SectionID   string
	ItemID      string
}

// Recorder is a pure side-effecting sink for decision records. It never
// errors and never affects the verdict.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// SlogRecorder writes audit entries to a structured logger.
type SlogRecorder struct {
	logger *slog.Logger
}

// NewSlogRecorder creates a recorder backed by the given logger.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

// Record emits the entry at info level. Empty fields are omitted to keep
// records scannable.
func (r *SlogRecorder) Record(ctx context.Context, entry Entry) {
	attrs := []slog.Attr{
		slog.String("stage", string(entry.Stage)),
		slog.String("operation", entry.Operation),
		slog.String("caller", entry.CallerID),
		slog.String("request_id", entry.RequestID),
	}
	if entry.Reason != "" {
		attrs = append(attrs, slog.String("reason", entry.Reason))
	}
	if entry.Role != "" {
		attrs = append(attrs, slog.String("role", string(entry.Role)))
	}
	if entry.ChecklistID != "" {
		attrs = append(attrs, slog.String("checklist_id", entry.ChecklistID))
	}
	if entry.SectionID != "" {
		attrs = append(attrs, slog.String("section_id", entry.SectionID))
	}
	if entry.ItemID != "" {
		attrs = append(attrs, slog.String("item_id", entry.ItemID))
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "authorization audit", attrs...)
}
