package mertio

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives load and save outcomes.
// Implement it to forward to a monitoring system.
type MetricsCollector interface {
	// RecordLoad is called after each load with the number of records read.
	RecordLoad(records int, duration time.Duration, err error)

	// RecordSave is called after each save with the number of records written.
	RecordSave(records int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory counters.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadRecords    atomic.Int64
	LoadTotalNanos atomic.Int64
	SaveCount      atomic.Int64
	SaveErrors     atomic.Int64
	SaveRecords    atomic.Int64
	SaveTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(records int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadRecords.Add(int64(records))
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(records int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveRecords.Add(int64(records))
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// BasicMetricsStats is a point-in-time copy of the counters.
type BasicMetricsStats struct {
	LoadCount       int64
	LoadErrors      int64
	LoadRecords     int64
	LoadAvgDuration time.Duration
	SaveCount       int64
	SaveErrors      int64
	SaveRecords     int64
	SaveAvgDuration time.Duration
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		LoadCount:   b.LoadCount.Load(),
		LoadErrors:  b.LoadErrors.Load(),
		LoadRecords: b.LoadRecords.Load(),
		SaveCount:   b.SaveCount.Load(),
		SaveErrors:  b.SaveErrors.Load(),
		SaveRecords: b.SaveRecords.Load(),
	}
	if s.LoadCount > 0 {
		s.LoadAvgDuration = time.Duration(b.LoadTotalNanos.Load() / s.LoadCount)
	}
	if s.SaveCount > 0 {
		s.SaveAvgDuration = time.Duration(b.SaveTotalNanos.Load() / s.SaveCount)
	}
	return s
}
