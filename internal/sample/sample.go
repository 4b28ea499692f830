// Package sample generates deterministic text to use as benchmark input.
package sample

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var corpus = []string{
	"Alice was beginning to get very tired of sitting by her sister on the bank,",
	"and of having nothing to do: once or twice she had peeped into the book her",
	"sister was reading, but it had no pictures or conversations in it, and what",
	"is the use of a book, thought Alice, without pictures or conversations?",
	"So she was considering in her own mind (as well as she could, for the hot",
	"day made her feel very sleepy and stupid), whether the pleasure of making a",
	"daisy-chain would be worth the trouble of getting up and picking the daisies,",
	"when suddenly a White Rabbit with pink eyes ran close by her.",
	"",
}

// Reader yields exactly Size bytes of newline-terminated text. The content
// only depends on Size, so two readers of the same size produce the same
// bytes.
type Reader struct {
	Size int64
	pos  int64

	line    int
	pending []byte
}

// NewReader returns a Reader producing size bytes.
func NewReader(size int64) *Reader {
	return &Reader{Size: size}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.pos >= r.Size {
		return 0, io.EOF
	}
	if remaining := r.Size - r.pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	for n < len(p) {
		if len(r.pending) == 0 {
			r.pending = r.nextLine()
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	r.pos += int64(n)
	return n, nil
}

func (r *Reader) nextLine() []byte {
	text := corpus[r.line%len(corpus)]
	r.line++
	if text == "" {
		return []byte("\n")
	}
	return []byte(text + "\n")
}

// WriteFile writes size bytes of sample text to path, creating parent
// directories as needed.
func WriteFile(path string, size int64) (int64, error) {
	if size < 0 {
		return 0, fmt.Errorf("negative size %d", size)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, NewReader(size))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
