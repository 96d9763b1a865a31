package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed iris.csv
var irisCSV []byte

// Iris column names.
const (
	SepalLength = "sepal length (cm)"
	SepalWidth  = "sepal width (cm)"
	PetalLength = "petal length (cm)"
	PetalWidth  = "petal width (cm)"
	Species     = "species"
)

// IrisSchema is the fixed schema of the built-in dataset.
func IrisSchema() Schema {
	return Schema{
		Columns: []Column{
			{Name: SepalLength, Kind: Numeric},
			{Name: SepalWidth, Kind: Numeric},
			{Name: PetalLength, Kind: Numeric},
			{Name: PetalWidth, Kind: Numeric},
			{Name: Species, Kind: Categorical, Levels: []string{"setosa", "versicolor", "virginica"}},
		},
		Label: Species,
	}
}

// LoadError reports that a dataset source was unavailable or malformed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load error"
	}
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadIris materializes the built-in Iris dataset.
func LoadIris() (*Table, error) {
	return ReadCSV("iris", bytes.NewReader(irisCSV), IrisSchema())
}

// IrisCSV returns the raw embedded dataset.
func IrisCSV() []byte { return append([]byte(nil), irisCSV...) }

// ReadCSV parses a headed CSV stream against schema. Empty fields and the
// NA/NaN tokens are read as missing. Any failure is returned as *LoadError.
func ReadCSV(source string, r io.Reader, schema Schema) (*Table, error) {
	if r == nil {
		return nil, &LoadError{Source: source, Err: errors.New("no data source")}
	}
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Err: errors.New("empty input")}
		}
		return nil, &LoadError{Source: source, Err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) != len(schema.Columns) {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("header has %d columns, want %d", len(header), len(schema.Columns))}
	}
	for i, h := range header {
		if strings.TrimSpace(h) != schema.Columns[i].Name {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("column %d is %q, want %q", i+1, strings.TrimSpace(h), schema.Columns[i].Name)}
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Source: source, Err: fmt.Errorf("read row %d: %w", len(rows)+1, err)}
		}
		row := make(Row, len(rec))
		for i, raw := range rec {
			v, err := parseCell(raw, schema.Columns[i])
			if err != nil {
				return nil, &LoadError{Source: source, Err: fmt.Errorf("row %d: %w", len(rows)+1, err)}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	t, err := New(schema, rows)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return t, nil
}

func parseCell(raw string, col Column) (Value, error) {
	s := strings.TrimSpace(raw)
	if isMissingToken(s) {
		return Missing(), nil
	}
	if col.Kind == Categorical {
		return Cat(s), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("column %q: parse %q: %w", col.Name, s, err)
	}
	return Num(f), nil
}

func isMissingToken(s string) bool {
	return s == "" || s == "NA" || s == "NaN"
}
