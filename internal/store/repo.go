package store

import (
	"context"
	"time"

	"github.com/ksuda/kioku/internal/card"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// CardRepo provides access to the card pool and its review state.
type CardRepo interface {
	// All returns every card in the pool.
	All(ctx context.Context) ([]*card.Card, error)

	// Filter returns cards matching the given subject and/or chapter.
	// Empty strings match everything.
	Filter(ctx context.Context, subject, chapter string) ([]*card.Card, error)

	// Insert upserts cards by ID and returns how many rows were written.
	// Review state of existing cards is preserved.
	Insert(ctx context.Context, cards []*card.Card) (int, error)

	// UpdateReviewState persists a card's mutable review fields.
	UpdateReviewState(ctx context.Context, c *card.Card) error

	// ResetReviewState clears review progress on every card.
	ResetReviewState(ctx context.Context) error

	// Count returns the total number of cards.
	Count(ctx context.Context) (int, error)

	// Chapters lists the distinct chapters for a subject (or all
	// subjects when empty), sorted alphabetically.
	Chapters(ctx context.Context, subject string) ([]string, error)
}

// ReviewEventData captures one graded presentation.
type ReviewEventData struct {
	SessionID        string
	CardID           string
	Quality          int
	Correct          bool
	ConfidenceBefore int
	ConfidenceAfter  int
	NextReview       time.Time
	TimeMs           int64
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // "started", "completed", "abandoned"
	Mode         string
	CardsStudied int
	CorrectCount int
	MaxStreak    int
	DurationSecs int
}

// SessionRecord is a stored session event row.
type SessionRecord struct {
	ID           int
	Timestamp    time.Time
	SessionID    string
	Action       string
	Mode         string
	CardsStudied int
	CorrectCount int
	MaxStreak    int
	DurationSecs int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event row.
type LLMEventRecord struct {
	ID           int
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStat aggregates token usage per purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendReviewEvent records one graded card presentation.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// AppendSessionEvent records a session start/completion.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns completed sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// ReviewsSince counts graded presentations at or after t.
	ReviewsSince(ctx context.Context, t time.Time) (int, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates usage per served model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
