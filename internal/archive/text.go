package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// ReadColumns parses a whitespace-separated numeric table and returns the
// requested zero-based columns in the order given. Blank lines and lines
// starting with '#' or '!' are skipped.
func (r *Reader) ReadColumns(path string, columns ...int) ([]core.Series, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: archive: no columns requested", core.ErrInvalidInput)
	}

	data, err := r.ReadAll(path)
	if err != nil {
		return nil, err
	}

	out := make([]core.Series, len(columns))
	for i := range out {
		out[i] = core.Series{}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '!' {
			continue
		}

		fields := strings.Fields(text)
		for i, c := range columns {
			if c < 0 || c >= len(fields) {
				return nil, fmt.Errorf("%w: %s:%d: no column %d (%d fields)",
					core.ErrFileAccess, path, line, c, len(fields))
			}

			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: column %d: %w", core.ErrFileAccess, path, line, c, err)
			}
			out[i] = append(out[i], v)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFileAccess, path, err)
	}

	return out, nil
}
