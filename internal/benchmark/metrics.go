package benchmark

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/copybench/copybench/internal/utils"
)

// Metrics collects the measurements of a single copy task.
type Metrics struct {
	StartTime time.Time
	EndTime   time.Time

	BytesRead    int64
	BytesWritten int64

	StartMemAlloc uint64
	EndMemAlloc   uint64
}

// NewMetrics starts the clock.
func NewMetrics() *Metrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &Metrics{
		StartTime:     time.Now(),
		StartMemAlloc: m.TotalAlloc,
	}
}

// Finish stops the clock and records how many bytes were moved.
func (bm *Metrics) Finish(read, written int64) {
	bm.EndTime = time.Now()
	bm.BytesRead = read
	bm.BytesWritten = written

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bm.EndMemAlloc = m.TotalAlloc
}

// Results returns the computed metrics. Calling it before Finish reports
// the time elapsed so far.
func (bm *Metrics) Results() Results {
	end := bm.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	elapsed := end.Sub(bm.StartTime)

	throughput := float64(0)
	if elapsed.Seconds() > 0 {
		throughput = float64(bm.BytesRead) / elapsed.Seconds() / (1024 * 1024)
	}

	var allocated uint64
	if bm.EndMemAlloc > bm.StartMemAlloc {
		allocated = bm.EndMemAlloc - bm.StartMemAlloc
	}

	return Results{
		Elapsed:        elapsed,
		BytesRead:      bm.BytesRead,
		BytesWritten:   bm.BytesWritten,
		ThroughputMBps: throughput,
		AllocatedBytes: allocated,
	}
}

// Results holds the final computed metrics of one task.
type Results struct {
	Elapsed        time.Duration
	BytesRead      int64
	BytesWritten   int64
	ThroughputMBps float64
	AllocatedBytes uint64
}

// Seconds formats the elapsed time the way the report prints it.
func (r Results) Seconds() string {
	return fmt.Sprintf("%.6f sec", r.Elapsed.Seconds())
}

// Throughput is the read rate in human units.
func (r Results) Throughput() string {
	return utils.FormatThroughput(r.BytesRead, r.Elapsed)
}

// String returns a formatted summary of the results
func (r Results) String() string {
	var b strings.Builder
	b.WriteString("Elapsed:    " + r.Elapsed.Round(time.Microsecond).String() + "\n")
	b.WriteString("Read:       " + utils.ConvertBytesToHumanReadable(r.BytesRead) + "\n")
	b.WriteString("Written:    " + utils.ConvertBytesToHumanReadable(r.BytesWritten) + "\n")
	b.WriteString("Throughput: " + r.Throughput() + "\n")
	b.WriteString("Allocated:  " + utils.ConvertBytesToHumanReadable(int64(r.AllocatedBytes)) + "\n")
	return b.String()
}
