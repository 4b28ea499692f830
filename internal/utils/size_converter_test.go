package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBytesToHumanReadable(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero bytes", 0, "0 B"},
		{"single byte", 1, "1 B"},
		{"small bytes", 500, "500 B"},
		{"max bytes before KiB", 1023, "1023 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"exactly 1 MiB", 1024 * 1024, "1.0 MiB"},
		{"100 MiB", 100 * 1024 * 1024, "100 MiB"},
		{"exactly 1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertBytesToHumanReadable(tt.bytes))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1KB", 1024},
		{"4kb", 4 * 1024},
		{"64KiB", 64 * 1024},
		{"2MB", 2 * 1024 * 1024},
		{"512", 512},
		{" 8k ", 8 * 1024},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-1KB"} {
		_, err := ParseSize(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseSizes(t *testing.T) {
	got, err := ParseSizes([]string{"1KB", "4KB", "64KB"}, 1<<30)
	require.NoError(t, err)
	assert.Equal(t, []int{1024, 4096, 65536}, got)

	_, err = ParseSizes([]string{"1KB", "nope"}, 1<<30)
	assert.ErrorContains(t, err, "nope")

	got, err = ParseSizes([]string{"1GB"}, 1<<30)
	require.NoError(t, err)
	assert.Equal(t, []int{1 << 30}, got)

	_, err = ParseSizes([]string{"64KB", "1TB"}, 1<<30)
	assert.ErrorContains(t, err, `"1TB"`)
	assert.ErrorContains(t, err, "larger than 1GiB")
}

func TestFormatThroughput(t *testing.T) {
	assert.Equal(t, "-", FormatThroughput(1024, 0))
	assert.Equal(t, "1.0 MiB/s", FormatThroughput(1024*1024, time.Second))
	assert.Equal(t, "2.0 MiB/s", FormatThroughput(1024*1024, 500*time.Millisecond))
}
