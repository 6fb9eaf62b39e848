// Package contrib loads per-position contribution tables and turns the
// positions passing a threshold into colored sequence features.
package contrib

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Separators of the contribution table.
const (
	FieldSeparator   = ';'
	DecimalSeparator = ','
)

// ErrMissingColumn is returned when a named column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

// Table is a header plus raw string rows, in file order.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// LoadTable reads a ';'-separated file with a header row.
func LoadTable(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open contribution table")
	}
	defer fh.Close()

	t, err := ReadTable(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return t, nil
}

// ReadTable parses a table from r. A UTF-8 byte-order mark is dropped.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.Comma = FieldSeparator
	cr.FieldsPerRecord = 0 // header width is enforced on every row

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: header row required")
	}
	if err != nil {
		return nil, errors.Wrap(err, "header")
	}
	t := &Table{Header: header, index: make(map[string]int, len(header))}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed row")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of name in the header.
func (t *Table) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, errors.Wrapf(ErrMissingColumn, "%q (have %s)", name, strings.Join(t.Header, ", "))
	}
	return i, nil
}

// Float reads cell (row, col) as a number. Blank cells read as NaN.
func (t *Table) Float(row, col int) (float64, error) {
	v, err := ParseDecimal(t.Rows[row][col])
	if err != nil {
		// +2: one for the header, one for 1-based line numbers.
		return v, errors.Wrapf(err, "line %d, column %q", row+2, t.Header[col])
	}
	return v, nil
}

// ParseDecimal parses a number written with ',' as decimal separator
// ("12,5"); '.' is accepted too. Blank input yields NaN.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, string(DecimalSeparator), ".", 1), 64)
	if err != nil {
		return math.NaN(), errors.Errorf("not a number: %q", s)
	}
	return v, nil
}
