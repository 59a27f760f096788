// Package service wires the classifier, store, aggregator and log view into
// the operations the front ends call: submit a question, fetch dashboard
// data, page through the log, export, reset. Every read takes a fresh scan;
// there is no caching layer.
package service

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"coteach/internal/classify"
	"coteach/internal/export"
	"coteach/internal/insights"
	"coteach/internal/logview"
	"coteach/internal/store"
)

// Service holds the configured tables and the store handle. It carries no
// per-session state; chat history and page cursors live with the caller.
type Service struct {
	rules    classify.Ruleset
	urgency  []string
	recs     insights.RecommendationTable
	pageSize int
	store    *store.Store
	log      *zap.Logger
}

// Options are the configured tables and defaults the service operates with.
type Options struct {
	Rules           classify.Ruleset
	UrgencyKeywords []string
	Recommendations insights.RecommendationTable
	PageSize        int
}

// New builds a Service around an open store. Zero-value options fall back to
// the built-in tables.
func New(st *store.Store, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Rules) == 0 {
		opts.Rules = classify.DefaultRuleset()
	}
	if len(opts.UrgencyKeywords) == 0 {
		opts.UrgencyKeywords = logview.DefaultUrgencyKeywords()
	}
	if len(opts.Recommendations) == 0 {
		opts.Recommendations = insights.DefaultRecommendations()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = logview.DefaultPageSize
	}
	return &Service{
		rules:    opts.Rules,
		urgency:  opts.UrgencyKeywords,
		recs:     opts.Recommendations,
		pageSize: opts.PageSize,
		store:    st,
		log:      logger,
	}
}

// Dashboard bundles everything the faculty view renders.
type Dashboard struct {
	Summary        insights.Summary
	Counts         map[classify.Topic]int
	Recommendation string
}

// PageResult is one page of the interaction log.
type PageResult struct {
	Entries    []logview.Entry
	PageIndex  int
	TotalPages int
	Filter     string
}

// Submit classifies the question, persists it and returns the stored record
// with the co-teacher confirmation line.
func (s *Service) Submit(sessionID, text string) (store.Interaction, string, error) {
	topic := s.rules.Classify(text)

	rec, err := s.store.Insert(topic, text)
	if err != nil {
		s.log.Error("submit failed", zap.String("session", sessionID), zap.Error(err))
		return store.Interaction{}, "", fmt.Errorf("submit: %w", err)
	}

	s.log.Info("question submitted",
		zap.String("session", sessionID),
		zap.Int64("id", rec.ID),
		zap.String("topic", string(topic)))

	reply := fmt.Sprintf("I see you're asking about %s. Your question was saved for the instructor.", topic)
	return rec, reply, nil
}

// GetDashboard scans the store and computes the faculty metrics.
func (s *Service) GetDashboard() (Dashboard, error) {
	records, err := s.store.Scan()
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}

	summary := insights.Summarize(records)
	return Dashboard{
		Summary:        summary,
		Counts:         insights.TopicCounts(records),
		Recommendation: s.recs.Recommendation(summary.TopTopic),
	}, nil
}

// GetPage scans the store and returns the requested log page. Unknown filter
// values behave like "All"; an out-of-range page index is clamped, and the
// index actually used is reported back for the caller's cursor.
func (s *Service) GetPage(filter string, pageIndex, pageSize int) (PageResult, error) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	records, err := s.store.Scan()
	if err != nil {
		return PageResult{}, fmt.Errorf("page: %w", err)
	}

	entries, totalPages := logview.Page(records, filter, s.urgency, pageIndex, pageSize)
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}

	return PageResult{
		Entries:    entries,
		PageIndex:  pageIndex,
		TotalPages: totalPages,
		Filter:     filter,
	}, nil
}

// Reset empties the store. The caller is responsible for gating this.
func (s *Service) Reset() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.log.Warn("all interactions deleted")
	return nil
}

// Export writes the full log as CSV to w.
func (s *Service) Export(w io.Writer) (int, error) {
	records, err := s.store.Scan()
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	if err := export.WriteCSV(w, records); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	return len(records), nil
}
