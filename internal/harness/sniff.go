package harness

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// headerSize is how much of a file filetype needs to recognise it.
const headerSize = 261

// SniffBinary reports whether path starts with the signature of a known
// binary format and returns its MIME type. Plain text is never matched.
func SniffBinary(path string) (mime string, binary bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", false, err
	}
	if kind == filetype.Unknown {
		return "", false, nil
	}
	return kind.MIME.Value, true, nil
}
