package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownReport(t *testing.T) {
	out := MarkdownReport(&Suite{
		Title:      "flush latency",
		Iterations: 100,
		Burst:      10,
		Rows: []Row{
			{Name: "effects: 1", Avg: time.Microsecond, Triggers: 10, Coalesced: 9},
			{Name: "effects: 10", Avg: 2 * time.Microsecond},
		},
	})

	assert.Contains(t, out, "# flush latency")
	assert.Contains(t, out, "100 iterations per case, 10 writes per burst.")
	assert.Contains(t, out, "| effects: 1 | 1µs |")
	assert.Contains(t, out, "| 90.0% |")
	assert.Contains(t, out, "| effects: 10 | 2µs |")
	assert.Contains(t, out, "| - |")
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "-", ratio(1, 0))
	assert.Equal(t, "50.0%", ratio(1, 2))
	assert.Equal(t, "0.0%", ratio(0, 3))
}
