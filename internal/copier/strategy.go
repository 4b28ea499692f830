package copier

import (
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/samber/lo"
)

// Kind identifies the buffering policy of a Strategy.
type Kind string

const (
	KindByte  Kind = "byte"
	KindBlock Kind = "block"
	KindLine  Kind = "line"
)

// Func is the signature shared by all copy routines.
type Func func(dst io.Writer, src io.Reader) (int64, error)

// Strategy is one copy algorithm variant under benchmark.
type Strategy struct {
	Name      string
	Kind      Kind
	BlockSize int  // only for KindBlock
	Exact     bool // KindBlock without final-block padding
	Copy      Func
}

var blockUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBlockSize renders a block size the way the benchmark labels it,
// e.g. 1024 -> "1KB", 65536 -> "64KB".
func FormatBlockSize(size int) string {
	return units.CustomSize("%.4g%s", float64(size), 1024.0, blockUnits)
}

func Byte() Strategy {
	return Strategy{
		Name: "byte-by-byte",
		Kind: KindByte,
		Copy: ByteCopy,
	}
}

func Block(size int) Strategy {
	return Strategy{
		Name:      "block-" + FormatBlockSize(size),
		Kind:      KindBlock,
		BlockSize: size,
		Copy: func(dst io.Writer, src io.Reader) (int64, error) {
			return BlockCopy(dst, src, size)
		},
	}
}

func BlockExact(size int) Strategy {
	return Strategy{
		Name:      "block-exact-" + FormatBlockSize(size),
		Kind:      KindBlock,
		BlockSize: size,
		Exact:     true,
		Copy: func(dst io.Writer, src io.Reader) (int64, error) {
			return BlockCopyExact(dst, src, size)
		},
	}
}

func Line() Strategy {
	return Strategy{
		Name: "line-by-line",
		Kind: KindLine,
		Copy: LineCopy,
	}
}

// Strategies returns the standard benchmark line-up: byte-wise, one block
// strategy per size in the given order, then line copy.
func Strategies(blockSizes []int) []Strategy {
	out := make([]Strategy, 0, len(blockSizes)+2)
	out = append(out, Byte())
	out = append(out, lo.Map(blockSizes, func(size int, _ int) Strategy {
		return Block(size)
	})...)
	out = append(out, Line())
	return out
}

// Description is the human label used in the report.
func (s Strategy) Description() string {
	switch s.Kind {
	case KindByte:
		return "Copy a file byte-by-byte"
	case KindBlock:
		if s.Exact {
			return fmt.Sprintf("Copy a file using exact %s blocks", FormatBlockSize(s.BlockSize))
		}
		return fmt.Sprintf("Copy a file using a %s block", FormatBlockSize(s.BlockSize))
	case KindLine:
		return "Copy a file line-by-line"
	}
	return s.Name
}

// Pads reports whether running s over inputLen bytes appends stale buffer
// content to the output.
func (s Strategy) Pads(inputLen int64) bool {
	if s.Kind != KindBlock || s.Exact || s.BlockSize <= 0 {
		return false
	}
	return inputLen%int64(s.BlockSize) != 0
}
