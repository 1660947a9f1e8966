package mertio

import (
	"github.com/hupe1980/mertio/stats"
)

// Record is the per-candidate row stored in a ScoreArray.
type Record = stats.Record

// RecordFactory constructs an empty record with a declared arity.
type RecordFactory = stats.Factory

// ScoreArray is an ordered collection of score records for one group
// (usually one sentence of an n-best list).
//
// Record positions correspond to an external candidate list, so insertion
// order is preserved. Every record is expected to hold NumberOfScores()
// fields; this is checked on demand by CheckConsistency, never on Add.
//
// A ScoreArray is not safe for concurrent use.
type ScoreArray struct {
	groupIndex string
	arity      int
	metricType string
	records    []Record

	opts options
}

// NewScoreArray returns an empty array with arity 0 and an empty group index.
func NewScoreArray(optFns ...Option) *ScoreArray {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &ScoreArray{opts: o}
}

// Add appends a record. The arity is not checked.
func (a *ScoreArray) Add(r Record) {
	a.records = append(a.records, r)
}

// Size returns the number of records.
func (a *ScoreArray) Size() int { return len(a.records) }

// Get returns the record at position i. It panics if i is out of range.
func (a *ScoreArray) Get(i int) Record { return a.records[i] }

// Records returns the records in order. The slice is shared with the array.
func (a *ScoreArray) Records() []Record { return a.records }

// NumberOfScores returns the declared arity; 0 means not yet known.
func (a *ScoreArray) NumberOfScores() int { return a.arity }

// SetNumberOfScores sets the declared arity.
func (a *ScoreArray) SetNumberOfScores(n int) {
	if n < 0 {
		n = 0
	}
	a.arity = n
}

// GroupIndex returns the group identifier.
func (a *ScoreArray) GroupIndex() string { return a.groupIndex }

// SetGroupIndex sets the group identifier.
func (a *ScoreArray) SetGroupIndex(group string) { a.groupIndex = group }

// MetricType returns the metric label read from the last header.
func (a *ScoreArray) MetricType() string { return a.metricType }

// SetMetricType sets the metric label.
func (a *ScoreArray) SetMetricType(metric string) { a.metricType = metric }

// CheckConsistency reports whether every record holds NumberOfScores()
// fields. An array with arity 0 is always consistent.
func (a *ScoreArray) CheckConsistency() bool {
	if a.arity == 0 {
		return true
	}
	for _, r := range a.records {
		if r.Size() != a.arity {
			return false
		}
	}
	return true
}

// Merge appends copies of other's records in order. Group index, arity and
// metric type of a are left alone and consistency is not re-checked.
func (a *ScoreArray) Merge(other *ScoreArray) {
	if other == nil {
		return
	}
	for _, r := range other.records {
		a.Add(r.Clone())
	}
}

// Reset drops all records and metadata.
func (a *ScoreArray) Reset() {
	a.groupIndex = ""
	a.arity = 0
	a.metricType = ""
	a.records = nil
}
