package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameMetricsAverage(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(10 * time.Millisecond)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)
}

func TestFrameMetricsFPS(t *testing.T) {
	m := NewFrameMetrics()
	assert.Zero(t, m.FPS())
	// 101 frames of 10ms crosses the one second mark on the last update
	for i := 0; i < 101; i++ {
		m.Update(10 * time.Millisecond)
	}
	assert.Equal(t, 100.0, m.FPS())
}
