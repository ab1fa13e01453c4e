package templates

import (
	"strconv"
	"time"
)

// Suite is one benchmark run as rendered by MarkdownReport.
type Suite struct {
	Title      string
	Iterations int
	Burst      int
	Rows       []Row
}

type Row struct {
	Name                    string
	Avg, Min, P75, P99, Max time.Duration
	Triggers, Coalesced     uint64
}

func ratio(part, whole uint64) string {
	if whole == 0 {
		return "-"
	}
	return strconv.FormatFloat(100*float64(part)/float64(whole), 'f', 1, 64) + "%"
}
