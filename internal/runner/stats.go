package runner

import "time"

// Stats aggregates the outcomes of one run.
type Stats struct {
	Passed   int
	Failed   int
	Skipped  int
	Started  time.Time
	Finished time.Time
}

// Count tallies one outcome.
func (s *Stats) Count(status Status) {
	switch status {
	case StatusPass:
		s.Passed++
	case StatusFail:
		s.Failed++
	case StatusSkip:
		s.Skipped++
	}
}

// Total returns the number of evaluated cases, skips included.
func (s *Stats) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Duration returns the wall time of the run.
func (s *Stats) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}
