package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
)

// ParseSize parses sizes like "1KB", "64KiB", "2MB" or "512" into bytes.
// Units are binary: 1KB == 1024.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive: %q", s)
	}
	return n, nil
}

// ParseSizes parses each entry with ParseSize and rejects sizes above limit.
func ParseSizes(list []string, limit int64) ([]int, error) {
	out := make([]int, 0, len(list))
	for _, s := range list {
		n, err := ParseSize(s)
		if err != nil {
			return nil, fmt.Errorf("invalid block size %q: %w", s, err)
		}
		if n > limit {
			return nil, fmt.Errorf("invalid block size %q: larger than %s", s, units.BytesSize(float64(limit)))
		}
		out = append(out, int(n))
	}
	return out, nil
}

// ConvertBytesToHumanReadable renders a byte count with binary units,
// e.g. 1536 -> "1.5 KiB".
func ConvertBytesToHumanReadable(b int64) string {
	if b < 0 {
		return "-" + humanize.IBytes(uint64(-b))
	}
	return humanize.IBytes(uint64(b))
}

// FormatThroughput renders bytes moved over d as a per-second rate.
func FormatThroughput(b int64, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	perSec := float64(b) / d.Seconds()
	return humanize.IBytes(uint64(perSec)) + "/s"
}
