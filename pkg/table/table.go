package table

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ErrColumnNotFound is returned when a named column is not part of a table.
var ErrColumnNotFound = errors.New("column not found")

type Kind uint8

const (
	Null Kind = iota
	Number
	String
)

// Value is a single table cell
type Value struct {
	kind Kind
	num  float64
	str  string
}

func NullValue() Value {
	return Value{}
}

// Num returns a numeric value. NaN is stored as Null.
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: Number, num: v}
}

func Str(s string) Value {
	return Value{kind: String, str: s}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

// Float returns the numeric content of the value. Strings are parsed, so a
// categorical column holding "60" still converts.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case String:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String returns the canonical text form of the value, which is also the key
// used when the value is treated as a category. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case String:
		return v.str
	}
	return ""
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case String:
		return v.str == o.str
	}
	return true
}

// Table is an in-memory, row-ordered table with named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

func New(columns ...string) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, fmt.Errorf("duplicate column %s", c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	result := make([]string, len(t.columns))
	copy(result, t.columns)
	return result
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Width() int {
	return len(t.columns)
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (t *Table) AppendRow(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Get returns the value at row i of column. It panics if the column is absent.
func (t *Table) Get(i int, column string) Value {
	return t.rows[i][t.mustIndex(column)]
}

func (t *Table) Set(i int, column string, v Value) {
	t.rows[i][t.mustIndex(column)] = v
}

// Column returns a copy of the values of a column.
func (t *Table) Column(column string) ([]Value, error) {
	j, ok := t.index[column]
	if !ok {
		return nil, errors.Wrap(ErrColumnNotFound, column)
	}
	result := make([]Value, len(t.rows))
	for i, row := range t.rows {
		result[i] = row[j]
	}
	return result, nil
}

// SetColumn replaces the values of column, appending the column when it does
// not exist yet.
func (t *Table) SetColumn(column string, values []Value) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %s has %d values, table has %d rows", column, len(values), len(t.rows))
	}
	j, ok := t.index[column]
	if !ok {
		j = len(t.columns)
		t.index[column] = j
		t.columns = append(t.columns, column)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], Value{})
		}
	}
	for i := range t.rows {
		t.rows[i][j] = values[i]
	}
	return nil
}

// DropColumns removes the named columns. Absent names are ignored.
func (t *Table) DropColumns(columns ...string) {
	drop := make(map[int]bool, len(columns))
	for _, c := range columns {
		if j, ok := t.index[c]; ok {
			drop[j] = true
		}
	}
	if len(drop) == 0 {
		return
	}
	keep := make([]int, 0, len(t.columns)-len(drop))
	for j := range t.columns {
		if !drop[j] {
			keep = append(keep, j)
		}
	}
	names := make([]string, len(keep))
	index := make(map[string]int, len(keep))
	for k, j := range keep {
		names[k] = t.columns[j]
		index[t.columns[j]] = k
	}
	for i, row := range t.rows {
		newRow := make([]Value, len(keep))
		for k, j := range keep {
			newRow[k] = row[j]
		}
		t.rows[i] = newRow
	}
	t.columns = names
	t.index = index
}

// Filter returns a new table holding the rows for which keep returns true,
// in their original order.
func (t *Table) Filter(keep func(i int) bool) *Table {
	result := t.emptyCopy()
	for i, row := range t.rows {
		if keep(i) {
			newRow := make([]Value, len(row))
			copy(newRow, row)
			result.rows = append(result.rows, newRow)
		}
	}
	return result
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return t.Filter(func(int) bool { return true })
}

func (t *Table) emptyCopy() *Table {
	result := &Table{
		columns: make([]string, len(t.columns)),
		index:   make(map[string]int, len(t.columns)),
	}
	copy(result.columns, t.columns)
	for k, v := range t.index {
		result.index[k] = v
	}
	return result
}

func (t *Table) mustIndex(column string) int {
	j, ok := t.index[column]
	if !ok {
		panic(fmt.Sprintf("column %s not found", column))
	}
	return j
}
