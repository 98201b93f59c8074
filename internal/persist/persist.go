package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dreamware/lunardb/internal/hashutil"
)

// Header is the literal first line every dump file must carry. Load
// rejects any file whose first line doesn't match this exactly.
const Header = "LUNARDB_V1"

// ErrInvalidHeader is returned by Load when a file's first line is not
// exactly Header.
var ErrInvalidHeader = errors.New("persist: invalid format")

// filename derives the physical path for a logical name: the logical name
// never appears on disk, only its SHA-256 hex digest does. Different
// logical names yield different physical files with overwhelming
// probability.
func filename(logicalName string) string {
	return fmt.Sprintf("%s.cache", hashutil.SHA256Hex(logicalName))
}

// Save writes data to the file derived from logicalName, prefixed with the
// Header line. Any I/O error is returned to the caller; the logical name
// itself is never written to disk.
func Save(data []byte, logicalName string) error {
	f, err := os.Create(filename(logicalName))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%s\n", Header); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

// Load reads the file derived from logicalName, validates its header, and
// returns the remaining payload bytes. It returns ErrInvalidHeader if the
// first line is not exactly Header, and the underlying *os.PathError (or
// other I/O error) if the file cannot be opened or read.
func Load(logicalName string) ([]byte, error) {
	f, err := os.Open(filename(logicalName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if trimmed := trimNewline(line); trimmed != Header {
		return nil, ErrInvalidHeader
	}

	return io.ReadAll(r)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
