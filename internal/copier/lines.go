package copier

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// lineBufferSize is the read buffer of LineCopy. Longer lines are streamed
// through in pieces of this size.
const lineBufferSize = 64 * 1024

// LineTerminator is appended to every line written by LineCopy.
const LineTerminator = "\n"

var replacementChar = []byte("\uFFFD")

// LineCopy decodes src as UTF-8 text, splits it into lines and writes each
// line to dst followed by LineTerminator.
//
// "\n", "\r\n" and a lone "\r" all end a line. Invalid UTF-8 sequences are
// replaced with U+FFFD. A last line without a terminator gets one, so "\n"
// text with an unterminated last line grows by one byte. Line length is not
// limited.
func LineCopy(dst io.Writer, src io.Reader) (int64, error) {
	lw := &lineWriter{w: bufio.NewWriter(dst)}
	r := bufio.NewReaderSize(src, lineBufferSize)

	for {
		chunk, er := r.ReadSlice('\n')
		if len(chunk) > 0 {
			if ew := lw.consume(chunk); ew != nil {
				return lw.written, fail(ew, "failed to write line")
			}
		}
		if er == nil || errors.Is(er, bufio.ErrBufferFull) {
			continue
		}
		if !errors.Is(er, io.EOF) {
			return lw.written, fail(er, "failed to read line")
		}
		break
	}

	if lw.open {
		if ew := lw.endLine(); ew != nil {
			return lw.written, fail(ew, "failed to write line terminator")
		}
	}
	if ew := lw.w.Flush(); ew != nil {
		return lw.written, fail(ew, "failed to flush lines")
	}
	return lw.written, nil
}

// lineWriter keeps the line state that spans ReadSlice calls. carry holds
// the head of a UTF-8 sequence cut by the buffer boundary.
type lineWriter struct {
	w       *bufio.Writer
	written int64

	pendingCR bool
	open      bool
	carry     []byte
}

func (lw *lineWriter) consume(chunk []byte) error {
	if lw.pendingCR && chunk[0] == '\n' {
		chunk = chunk[1:]
	}
	lw.pendingCR = false

	for len(chunk) > 0 {
		i := bytes.IndexAny(chunk, "\r\n")
		if i < 0 {
			lw.open = true
			return lw.text(chunk, false)
		}
		if err := lw.text(chunk[:i], true); err != nil {
			return err
		}
		if err := lw.endLine(); err != nil {
			return err
		}
		if chunk[i] == '\r' {
			switch {
			case i+1 == len(chunk):
				lw.pendingCR = true
			case chunk[i+1] == '\n':
				i++
			}
		}
		chunk = chunk[i+1:]
	}
	return nil
}

// text writes part of a line. Unless final, an incomplete UTF-8 sequence at
// the end is held back until the next piece arrives.
func (lw *lineWriter) text(p []byte, final bool) error {
	if len(lw.carry) > 0 {
		p = append(lw.carry, p...)
		lw.carry = nil
	}
	if !final {
		if cut := incompleteTail(p); cut < len(p) {
			lw.carry = append([]byte(nil), p[cut:]...)
			p = p[:cut]
		}
	}
	if len(p) == 0 {
		return nil
	}
	if !utf8.Valid(p) {
		p = bytes.ToValidUTF8(p, replacementChar)
	}
	n, err := lw.w.Write(p)
	lw.written += int64(n)
	return err
}

func (lw *lineWriter) endLine() error {
	if err := lw.text(nil, true); err != nil {
		return err
	}
	lw.open = false
	n, err := lw.w.WriteString(LineTerminator)
	lw.written += int64(n)
	return err
}

// incompleteTail returns the offset of a trailing UTF-8 sequence that could
// still be completed by more input, or len(p) if there is none.
func incompleteTail(p []byte) int {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax+1; i-- {
		if utf8.RuneStart(p[i]) {
			if utf8.FullRune(p[i:]) {
				return len(p)
			}
			return i
		}
	}
	return len(p)
}
