package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind is the value type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "float64"
	case Categorical:
		return "category"
	default:
		return "unknown"
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind
	// Levels lists the allowed values of a categorical column, in declaration order.
	Levels []string
}

// Schema is the ordered column set shared by every row of a Table.
type Schema struct {
	Columns []Column
	// Label names the categorical column used for grouping; empty when the table is unlabeled.
	Label string
}

// Index returns the position of the named column or -1.
func (s Schema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// NumericColumns returns the names of numeric columns in schema order.
func (s Schema) NumericColumns() []string {
	var out []string
	for _, c := range s.Columns {
		if c.Kind == Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

func (s Schema) validate() error {
	if len(s.Columns) == 0 {
		return errors.New("schema has no columns")
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return errors.New("schema has an unnamed column")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.Kind == Categorical && len(c.Levels) == 0 {
			return fmt.Errorf("categorical column %q declares no levels", c.Name)
		}
	}
	if s.Label != "" {
		i := s.Index(s.Label)
		if i < 0 {
			return fmt.Errorf("label column %q not in schema", s.Label)
		}
		if s.Columns[i].Kind != Categorical {
			return fmt.Errorf("label column %q is not categorical", s.Label)
		}
	}
	return nil
}

func (s Schema) equal(o Schema) bool {
	if s.Label != o.Label || len(s.Columns) != len(o.Columns) {
		return false
	}
	for i, c := range s.Columns {
		oc := o.Columns[i]
		if c.Name != oc.Name || c.Kind != oc.Kind || len(c.Levels) != len(oc.Levels) {
			return false
		}
		for j := range c.Levels {
			if c.Levels[j] != oc.Levels[j] {
				return false
			}
		}
	}
	return true
}

// Value is a single cell. The zero Value is a missing cell.
type Value struct {
	num   float64
	str   string
	kind  Kind
	valid bool
}

// Num returns a present numeric cell.
func Num(v float64) Value { return Value{num: v, kind: Numeric, valid: true} }

// Cat returns a present categorical cell.
func Cat(s string) Value { return Value{str: s, kind: Categorical, valid: true} }

// Missing returns a missing cell.
func Missing() Value { return Value{} }

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return !v.valid }

// Float returns the numeric payload; NaN for missing or categorical cells.
func (v Value) Float() float64 {
	if !v.valid || v.kind != Numeric {
		return math.NaN()
	}
	return v.num
}

// Text returns the categorical payload; empty for missing or numeric cells.
func (v Value) Text() string {
	if !v.valid || v.kind != Categorical {
		return ""
	}
	return v.str
}

// String renders the cell the way the console tables print it.
func (v Value) String() string {
	if !v.valid {
		return "NaN"
	}
	if v.kind == Numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v Value) equal(o Value) bool {
	if v.valid != o.valid {
		return false
	}
	if !v.valid {
		return true
	}
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}

// Row is one record, positionally aligned with the schema columns.
type Row []Value

// Table is an immutable labeled dataset.
type Table struct {
	schema Schema
	rows   []Row
}

// New validates rows against the schema and returns a Table that owns copies of them.
func New(schema Schema, rows []Row) (*Table, error) {
	if err := schema.validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	levels := make([]map[string]bool, len(schema.Columns))
	for i, c := range schema.Columns {
		if c.Kind == Categorical {
			levels[i] = make(map[string]bool, len(c.Levels))
			for _, l := range c.Levels {
				levels[i][l] = true
			}
		}
	}
	out := make([]Row, len(rows))
	for r, row := range rows {
		if len(row) != len(schema.Columns) {
			return nil, fmt.Errorf("row %d: got %d values, want %d", r+1, len(row), len(schema.Columns))
		}
		for i, v := range row {
			if v.IsMissing() {
				continue
			}
			col := schema.Columns[i]
			if v.kind != col.Kind {
				return nil, fmt.Errorf("row %d: column %q holds a %s value", r+1, col.Name, v.kind)
			}
			if col.Kind == Categorical && !levels[i][v.str] {
				return nil, fmt.Errorf("row %d: column %q: unknown level %q", r+1, col.Name, v.str)
			}
		}
		out[r] = append(Row(nil), row...)
	}
	return &Table{schema: cloneSchema(schema), rows: out}, nil
}

func cloneSchema(s Schema) Schema {
	cols := make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		c.Levels = append([]string(nil), c.Levels...)
		cols[i] = c
	}
	return Schema{Columns: cols, Label: s.Label}
}

// Schema returns a copy of the table schema.
func (t *Table) Schema() Schema { return cloneSchema(t.schema) }

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return len(t.rows), len(t.schema.Columns) }

// At returns the cell at row r and column c.
func (t *Table) At(r, c int) Value { return t.rows[r][c] }

// Row returns a copy of row r.
func (t *Table) Row(r int) Row { return append(Row(nil), t.rows[r]...) }

// Head returns up to n leading rows.
func (t *Table) Head(n int) []Row {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([]Row, 0, n)
	for r := 0; r < n; r++ {
		out = append(out, t.Row(r))
	}
	return out
}

// Floats returns the named numeric column with missing cells as NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	i := t.schema.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if t.schema.Columns[i].Kind != Numeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i].Float()
	}
	return out, nil
}

// Labels returns the label value of every row; empty strings mark missing labels.
func (t *Table) Labels() []string {
	i := t.schema.Index(t.schema.Label)
	if i < 0 {
		return nil
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i].Text()
	}
	return out
}

// LabelValues returns the distinct present label values in first-seen order.
func (t *Table) LabelValues() []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range t.Labels() {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// MissingCounts returns the number of missing cells per column, in schema order.
func (t *Table) MissingCounts() []ColumnCount {
	out := make([]ColumnCount, len(t.schema.Columns))
	for i, c := range t.schema.Columns {
		out[i].Column = c.Name
		for _, row := range t.rows {
			if row[i].IsMissing() {
				out[i].Count++
			}
		}
	}
	return out
}

// TotalMissing returns the number of missing cells in the table.
func (t *Table) TotalMissing() int {
	n := 0
	for _, cc := range t.MissingCounts() {
		n += cc.Count
	}
	return n
}

// WithCells returns a copy of the table with the given cells replaced.
// Replacement values are validated like New's input.
func (t *Table) WithCells(cells map[[2]int]Value) (*Table, error) {
	rows := make([]Row, len(t.rows))
	for r, row := range t.rows {
		rows[r] = append(Row(nil), row...)
	}
	for pos, v := range cells {
		r, c := pos[0], pos[1]
		if r < 0 || r >= len(rows) || c < 0 || c >= len(t.schema.Columns) {
			return nil, fmt.Errorf("cell (%d,%d) out of range", r, c)
		}
		rows[r][c] = v
	}
	return New(t.schema, rows)
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.rows))
	for r, row := range t.rows {
		rows[r] = append(Row(nil), row...)
	}
	return &Table{schema: cloneSchema(t.schema), rows: rows}
}

// Equal reports whether both tables have the same schema and cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.schema.equal(o.schema) || len(t.rows) != len(o.rows) {
		return false
	}
	for r := range t.rows {
		for c := range t.rows[r] {
			if !t.rows[r][c].equal(o.rows[r][c]) {
				return false
			}
		}
	}
	return true
}
