package utils

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TimingStats collects wall-clock timing for the points of a sweep.
// Points may record concurrently.
type TimingStats struct {
	mu sync.Mutex

	TotalTime    time.Duration
	PointTime    time.Duration // summed over points, exceeds TotalTime when parallel
	SlowestPoint time.Duration
	Points       int
}

// Record adds the duration of one finished point.
func (s *TimingStats) Record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PointTime += d
	s.Points++
	if d > s.SlowestPoint {
		s.SlowestPoint = d
	}
}

// AddWall adds elapsed wall-clock time for a whole sweep.
func (s *TimingStats) AddWall(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalTime += d
}

// Average returns the mean point duration.
func (s *TimingStats) Average() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Points == 0 {
		return 0
	}
	return s.PointTime / time.Duration(s.Points)
}

// LogTimingStats writes the timing breakdown at debug level.
func LogTimingStats(log logrus.FieldLogger, kind string, stats *TimingStats) {
	avg := stats.Average()
	stats.mu.Lock()
	defer stats.mu.Unlock()
	log.WithFields(logrus.Fields{
		"sweep":      kind,
		"points":     stats.Points,
		"total":      stats.TotalTime,
		"avg_us":     DurationUS(avg),
		"slowest_us": DurationUS(stats.SlowestPoint),
		"speedup":    speedup(stats.PointTime, stats.TotalTime),
	}).Debug("sweep timing")
}

func speedup(work, wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return float64(work) / float64(wall)
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
