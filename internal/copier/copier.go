// Package copier implements the copy strategies compared by the benchmark.
//
// Every strategy moves bytes from an io.Reader to an io.Writer and reports
// the number of bytes written to the sink. Opening and closing the
// underlying files is the caller's job.
package copier

import (
	"errors"
	"io"
)

// ByteCopy copies src to dst one byte per Read and one byte per Write.
// Neither side is buffered, so on a plain *os.File every byte costs two
// system calls.
func ByteCopy(dst io.Writer, src io.Reader) (written int64, err error) {
	var b [1]byte
	for {
		nr, er := src.Read(b[:])
		if nr > 0 {
			nw, ew := dst.Write(b[:nr])
			if ew != nil {
				return written, fail(ew, "failed to write byte")
			}
			if nw != nr {
				return written, fail(io.ErrShortWrite, "failed to write byte")
			}
			written += int64(nw)
		}
		if er != nil {
			if errors.Is(er, io.EOF) {
				return written, nil
			}
			return written, fail(er, "failed to read byte")
		}
	}
}

// MaxBlockSize is the largest buffer a block strategy allocates.
const MaxBlockSize int64 = 1 << 30

// BlockCopy reads up to size bytes at a time into a single reusable buffer
// and writes the whole buffer after every non-empty read.
//
// A short read still writes len(buf) bytes. When size does not divide the
// input length the output is padded up to a multiple of size with whatever
// the buffer held from the previous read (zeros if there was none).
// Use BlockCopyExact to write only the bytes read.
func BlockCopy(dst io.Writer, src io.Reader, size int) (int64, error) {
	return blockCopy(dst, src, size, false)
}

// BlockCopyExact is BlockCopy without the padding: each write covers only
// the bytes returned by the preceding read.
func BlockCopyExact(dst io.Writer, src io.Reader, size int) (int64, error) {
	return blockCopy(dst, src, size, true)
}

func blockCopy(dst io.Writer, src io.Reader, size int, exact bool) (written int64, err error) {
	if size <= 0 || int64(size) > MaxBlockSize {
		return 0, fail(ErrInvalidBlockSize, "failed to allocate block")
	}

	buf := make([]byte, size)
	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			chunk := buf
			if exact {
				chunk = buf[:nr]
			}
			nw, ew := dst.Write(chunk)
			if ew != nil {
				return written, fail(ew, "failed to write block")
			}
			if nw != len(chunk) {
				return written, fail(io.ErrShortWrite, "failed to write block")
			}
			written += int64(nw)
		}
		if er != nil {
			if errors.Is(er, io.EOF) {
				return written, nil
			}
			return written, fail(er, "failed to read block")
		}
	}
}

// PaddedLength returns the number of bytes BlockCopy writes for an input of
// inputLen bytes read in full blocks.
func PaddedLength(inputLen int64, size int) int64 {
	if size <= 0 || inputLen <= 0 {
		return 0
	}
	blocks := (inputLen + int64(size) - 1) / int64(size)
	return blocks * int64(size)
}
