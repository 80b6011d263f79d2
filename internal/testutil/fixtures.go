package testutil

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// FITSColumn is one column of a fixture table. Int columns are stored as
// 32-bit integers ("J"), all others as doubles ("D").
type FITSColumn struct {
	Name   string
	Values []float64
	Int    bool
}

// FITSTable describes one binary table extension.
type FITSTable struct {
	Name    string
	Cards   []fitsio.Card
	Columns []FITSColumn
}

// WriteFITS writes a FITS file holding an empty primary HDU followed by the
// given binary tables.
func WriteFITS(t testing.TB, fs afero.Fs, path string, tables ...FITSTable) {
	t.Helper()

	var buf bytes.Buffer
	if err := encodeFITS(&buf, tables); err != nil {
		t.Fatalf("encode FITS %s: %v", path, err)
	}

	writeFile(t, fs, path, buf.Bytes())
}

func encodeFITS(buf *bytes.Buffer, tables []FITSTable) error {
	f, err := fitsio.Create(buf)
	if err != nil {
		return err
	}

	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}

	if err := f.Write(phdu); err != nil {
		return err
	}

	for _, table := range tables {
		if err := writeTable(f, table); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}

	return f.Close()
}

func writeTable(f *fitsio.File, table FITSTable) error {
	cols := make([]fitsio.Column, len(table.Columns))
	rows := 0
	for i, c := range table.Columns {
		format := "D"
		if c.Int {
			format = "J"
		}
		cols[i] = fitsio.Column{Name: c.Name, Format: format}

		if i == 0 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return fmt.Errorf("column %s has %d rows, want %d", c.Name, len(c.Values), rows)
		}
	}

	tbl, err := fitsio.NewTable(table.Name, cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()

	if len(table.Cards) > 0 {
		if err := tbl.Header().Append(table.Cards...); err != nil {
			return err
		}
	}

	for r := 0; r < rows; r++ {
		args := make([]interface{}, len(table.Columns))
		for i, c := range table.Columns {
			if c.Int {
				v := int32(c.Values[r])
				args[i] = &v
				continue
			}
			v := c.Values[r]
			args[i] = &v
		}

		if err := tbl.Write(args...); err != nil {
			return err
		}
	}

	return f.Write(tbl)
}

// WriteText writes rows as a whitespace-separated table. Paths ending in
// ".gz" are gzip compressed.
func WriteText(t testing.TB, fs afero.Fs, path string, rows [][]float64) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("# fixture\n")
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}

	data := []byte(sb.String())
	if strings.HasSuffix(path, ".gz") {
		data = Gzip(t, data)
	}

	writeFile(t, fs, path, data)
}

// Gzip compresses data.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	return buf.Bytes()
}

// Columns transposes column slices into rows for WriteText.
func Columns(cols ...[]float64) [][]float64 {
	if len(cols) == 0 {
		return nil
	}

	rows := make([][]float64, len(cols[0]))
	for r := range rows {
		rows[r] = make([]float64, len(cols))
		for c, col := range cols {
			rows[r][c] = col[r]
		}
	}

	return rows
}

func writeFile(t testing.TB, fs afero.Fs, path string, data []byte) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
