package dataframe

import (
	"fmt"
	"sort"

	"github.com/arloliu/go-gscf/gscf"
	"github.com/arloliu/go-gscf/internal/util"
)

// Table is an immutable tabular view over a record list, indexed by token.
//
// The row index preserves the order in which tokens first occurred in the
// source records. Columns are ordered by first appearance; within a single
// record, new columns are discovered in ascending field-name order so that
// the column layout does not depend on map iteration order.
type Table struct {
	tokens  []string
	columns []string
	rows    map[string]map[string]any
}

// MissingTokenError reports a record that cannot be indexed because it lacks
// a usable "token" field.
type MissingTokenError struct {
	// Index is the position of the offending record in the source list.
	Index int
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("dataframe: record at index %d has no token field", e.Index)
}

// FromRecords builds a Table from a record list. Every record must carry a
// non-empty "token" field, which becomes the row index and is excluded from
// the columns.
//
// When the same token occurs more than once, the later record's fields
// replace the earlier one's while the token keeps its original index
// position.
func FromRecords(records []gscf.Record) (*Table, error) {
	t := &Table{
		tokens:  make([]string, 0, len(records)),
		columns: make([]string, 0),
		rows:    make(map[string]map[string]any, len(records)),
	}

	colSeen := make(map[string]bool)
	for i, record := range records {
		token := record.Token()
		if token == "" {
			return nil, &MissingTokenError{Index: i}
		}

		if _, ok := t.rows[token]; !ok {
			t.tokens = append(t.tokens, token)
		}

		names := make([]string, 0, len(record))
		for name := range record {
			if name != "token" {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		row := make(map[string]any, len(names))
		for _, name := range names {
			if !colSeen[name] {
				colSeen[name] = true
				t.columns = append(t.columns, name)
			}
			row[name] = record[name]
		}
		t.rows[token] = row
	}

	return t, nil
}

// FromMeasurements builds a Table from the measurement response shape, a
// mapping from token to field mapping. Rows are ordered by ascending token.
func FromMeasurements(byToken map[string]gscf.Record) (*Table, error) {
	return FromRecords(gscf.MeasurementRecords(byToken))
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.tokens)
}

// Tokens returns the row index in table order.
func (t *Table) Tokens() []string {
	return util.CloneSlice(t.tokens, 0)
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return util.CloneSlice(t.columns, 0)
}

// Value returns the cell at (token, column). The second return value is
// false when the token is not in the index or the row has no such field.
func (t *Table) Value(token, column string) (any, bool) {
	row, ok := t.rows[token]
	if !ok {
		return nil, false
	}
	value, ok := row[column]

	return value, ok
}

// Row returns the record stored under token, including the token itself, or
// nil when the token is not in the index. The returned record is a copy.
func (t *Table) Row(token string) gscf.Record {
	row, ok := t.rows[token]
	if !ok {
		return nil
	}

	record := make(gscf.Record, len(row)+1)
	for name, value := range row {
		record[name] = value
	}
	record["token"] = token

	return record
}

// Records serializes the table back into a record list in table order.
// Feeding the result to FromRecords reproduces the table.
func (t *Table) Records() []gscf.Record {
	records := make([]gscf.Record, 0, len(t.tokens))
	for _, token := range t.tokens {
		records = append(records, t.Row(token))
	}

	return records
}
