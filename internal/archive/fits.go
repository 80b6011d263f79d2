package archive

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-nicer/timing/core"
	"go.uber.org/zap"
)

// Header is the keyword set of one HDU.
type Header map[string]interface{}

// Has reports whether the keyword is present.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// String returns a string keyword.
func (h Header) String(key string) (string, error) {
	v, ok := h[key]
	if !ok {
		return "", fmt.Errorf("%w: missing keyword %s", core.ErrMetadata, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: keyword %s is %T, want string", core.ErrMetadata, key, v)
	}

	return strings.TrimSpace(s), nil
}

// Float returns a numeric keyword as float64. String values holding a
// number are accepted.
func (h Header) Float(key string) (float64, error) {
	v, ok := h[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing keyword %s", core.ErrMetadata, key)
	}

	if f, ok := toFloat(v); ok {
		return f, nil
	}

	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: keyword %s=%v is not numeric", core.ErrMetadata, key, v)
}

// HDUTable is one binary or ASCII table extension with its numeric scalar
// columns loaded.
type HDUTable struct {
	// Index is the HDU position in the file; the primary HDU is 0.
	Index  int
	Name   string
	Header Header
	Data   *core.Table
}

// FITSFile holds the table extensions of a FITS file.
type FITSFile struct {
	Path   string
	Tables []*HDUTable
}

// HDU returns the table stored at HDU position index.
func (f *FITSFile) HDU(index int) (*HDUTable, error) {
	for _, t := range f.Tables {
		if t.Index == index {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: %s: no table in HDU %d", core.ErrFileAccess, f.Path, index)
}

// WithColumns returns the first table carrying every named column. A table
// whose extension name equals prefer wins over earlier matches.
func (f *FITSFile) WithColumns(prefer string, columns ...string) (*HDUTable, error) {
	var first *HDUTable
	for _, t := range f.Tables {
		if !hasAll(t.Data, columns) {
			continue
		}

		if prefer != "" && strings.EqualFold(t.Name, prefer) {
			return t, nil
		}

		if first == nil {
			first = t
		}
	}

	if first == nil {
		return nil, fmt.Errorf("%w: %s: no table with columns %v", core.ErrMetadata, f.Path, columns)
	}

	return first, nil
}

func hasAll(t *core.Table, columns []string) bool {
	for _, c := range columns {
		if !t.Has(c) {
			return false
		}
	}

	return true
}

// ReadFITS loads every table extension of the FITS file at path.
func (r *Reader) ReadFITS(path string) (*FITSFile, error) {
	data, err := r.ReadAll(path)
	if err != nil {
		return nil, err
	}

	f, err := fitsio.Open(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFileAccess, path, err)
	}
	defer f.Close()

	out := &FITSFile{Path: path}
	for i, hdu := range f.HDUs() {
		tbl, ok := hdu.(*fitsio.Table)
		if !ok {
			continue
		}

		t, err := loadTable(i, tbl)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: HDU %d: %w", core.ErrFileAccess, path, i, err)
		}

		r.logger.Debug("loaded FITS table",
			zap.String("path", path),
			zap.Int("hdu", i),
			zap.String("name", t.Name),
			zap.Int("rows", t.Data.Len()),
			zap.Strings("columns", t.Data.Names()))

		out.Tables = append(out.Tables, t)
	}

	if len(out.Tables) == 0 {
		return nil, fmt.Errorf("%w: %s: no table extensions", core.ErrFileAccess, path)
	}

	return out, nil
}

func loadTable(index int, tbl *fitsio.Table) (*HDUTable, error) {
	hdr := make(Header)
	for _, key := range tbl.Header().Keys() {
		if card := tbl.Header().Get(key); card != nil {
			hdr[key] = card.Value
		}
	}

	cols := tbl.Cols()
	values := make(map[string]core.Series, len(cols))
	numeric := make(map[string]bool, len(cols))
	for _, c := range cols {
		numeric[c.Name] = true
	}

	n := tbl.NumRows()
	if n > 0 {
		rows, err := tbl.Read(0, n)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			row := make(map[string]interface{}, len(cols))
			if err := rows.Scan(&row); err != nil {
				return nil, err
			}

			for name, v := range row {
				f, ok := toFloat(v)
				if !ok {
					numeric[name] = false
					continue
				}
				values[name] = append(values[name], f)
			}
		}

		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	data := core.NewTable()
	for _, c := range cols {
		if !numeric[c.Name] {
			continue
		}

		s := values[c.Name]
		if s == nil {
			s = core.Series{}
		}

		if err := data.Add(c.Name, s); err != nil {
			return nil, err
		}
	}

	return &HDUTable{
		Index:  index,
		Name:   tbl.Name(),
		Header: hdr,
		Data:   data,
	}, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
