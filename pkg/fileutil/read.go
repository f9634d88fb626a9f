package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// MaxFileSize is the default read limit (1MB). Source files larger than this
// are not linted.
const MaxFileSize int64 = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads the file at path, failing with ErrFileTooLarge if
// it holds more than limit bytes. A non-positive limit means MaxFileSize.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > limit {
			return nil, errors.Wrapf(ErrFileTooLarge, "%d > %d bytes", info.Size(), limit)
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "more than %d bytes", limit)
	}

	return data, nil
}
