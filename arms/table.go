package arms

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// Columns of a surveydata record
const (
	ColVariableID    = "variable_id"
	ColState         = "state"
	ColCategoryValue = "category_value"
	ColYear          = "year"
	ColEstimate      = "estimate"
)

var (
	stateColumns    = []string{"id", "code", "name"}
	farmTypeColumns = []string{"id", "name", "desc", "is_invalid"}
)

// Row is a single record of an ARMS data array. Values are as decoded from
// JSON, with numbers kept as json.Number.
type Row map[string]interface{}

// String returns the value of col formatted as text, or "" if it is absent or null
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// Float returns the value of col as a number. Numeric strings are accepted,
// since the API sends some estimates as text.
func (r Row) Float(col string) (float64, bool) {
	switch v := r[col].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Table is the tabular projection of an ARMS data array: one row per record,
// columns being the union of the record keys in the order they were first seen.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Value returns the value of col in row i
func (t *Table) Value(i int, col string) interface{} {
	return t.Rows[i][col]
}

// Select returns the rows whose value in every filter column equals the
// filter value. A selection without matches is an empty table with the
// same columns.
func (t *Table) Select(filters map[string]string) *Table {
	out := &Table{Rows: []Row{}}
	if t == nil {
		return out
	}
	out.Columns = append([]string(nil), t.Columns...)
	for _, r := range t.Rows {
		if matches(r, filters) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

func matches(r Row, filters map[string]string) bool {
	for col, want := range filters {
		if _, ok := r[col]; !ok {
			return false
		}
		if r.String(col) != want {
			return false
		}
	}
	return true
}

// GroupBy splits the table by the values of col. Keys are returned sorted.
func (t *Table) GroupBy(col string) ([]string, map[string]*Table) {
	groups := make(map[string]*Table)
	for _, r := range t.Rows {
		k := r.String(col)
		g, ok := groups[k]
		if !ok {
			g = &Table{Columns: t.Columns}
			groups[k] = g
		}
		g.Rows = append(g.Rows, r)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

// WriteCSV writes the table to w with a header line
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, col := range t.Columns {
			record[i] = r.String(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Render prints the table to w in a human readable layout
func (t *Table) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = r.String(col)
		}
		tw.AppendRow(row)
	}

	tw.SetStyle(table.StyleRounded)
	tw.Render()
}

// newTable decodes a JSON array of objects into a Table. Leading columns are
// listed first whether or not any record carries them.
func newTable(data json.RawMessage, leading ...string) (*Table, error) {
	t := &Table{
		Columns: append([]string(nil), leading...),
		Rows:    []Row{},
	}
	seen := make(map[string]bool, len(leading))
	for _, c := range leading {
		seen[c] = true
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, errors.Wrap(err, "data is not a list")
	}

	for i := 0; dec.More(); i++ {
		keys, row, err := decodeRecord(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode record %d", i)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				t.Columns = append(t.Columns, k)
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, errors.Wrap(err, "unterminated data list")
	}
	return t, nil
}

// decodeRecord reads one JSON object, keeping the order of its keys
func decodeRecord(dec *json.Decoder) ([]string, Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}

	var keys []string
	row := make(Row)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, nil, errors.Wrapf(err, "bad value for %q", key)
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = v
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return keys, row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
