package kenlmgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordScore is called after each stateless scoring call
	// (Prob, ProbForWords, ProbSuffix, EstimateRule).
	// duration is the total time taken, err is nil if successful.
	RecordScore(duration time.Duration, err error)

	// RecordRuleScore is called after each stateful ProbRule call.
	RecordRuleScore(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScore(time.Duration, error)     {}
func (NoopMetricsCollector) RecordRuleScore(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ScoreCount          atomic.Int64
	ScoreErrors         atomic.Int64
	ScoreTotalNanos     atomic.Int64
	RuleScoreCount      atomic.Int64
	RuleScoreErrors     atomic.Int64
	RuleScoreTotalNanos atomic.Int64
}

func (c *BasicMetricsCollector) RecordScore(duration time.Duration, err error) {
	c.ScoreCount.Add(1)
	c.ScoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.ScoreErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordRuleScore(duration time.Duration, err error) {
	c.RuleScoreCount.Add(1)
	c.RuleScoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.RuleScoreErrors.Add(1)
	}
}
