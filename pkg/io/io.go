package io

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"strconv"

	"featurize/pkg/model"
	"featurize/pkg/table"
)

// NullTokens are the cell contents read as missing values.
var NullTokens = NewSet("", "NA", "N/A", "NaN", "nan", "null", "NULL", "#N/A", "n/a", "-NaN", "-nan", "<NA>")

type void struct{}

var Void = void{}

type Set map[string]void

func NewSet(values ...string) Set {
	set := Set{}
	for _, val := range values {
		set[val] = Void
	}
	return set
}

func (s Set) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

type DataError struct {
	Line  int
	Error string
}

// ReadTable reads a CSV stream whose first line is the header. Rows with the
// wrong number of fields are skipped and reported as DataErrors. A column
// whose non-missing cells all parse as numbers is numeric, every other column
// holds strings.
func ReadTable(r io.Reader) (*table.Table, []DataError, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	//First line is expected to be a header
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header: %w", err)
	}

	var errors []DataError
	var records [][]string
	line := 1
	for record, err := reader.Read(); err != io.EOF; record, err = reader.Read() {
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("error reading data at line %d: %w", line, err)
		}
		if len(record) != len(header) {
			errors = append(errors, DataError{
				Line:  line,
				Error: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}
		records = append(records, record)
	}

	numeric := make([]bool, len(header))
	for j := range header {
		numeric[j] = isNumericColumn(records, j)
	}

	t, err := table.New(header...)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header: %w", err)
	}
	row := make([]table.Value, len(header))
	for _, record := range records {
		for j, cell := range record {
			row[j] = parseCell(cell, numeric[j])
		}
		if err := t.AppendRow(row...); err != nil {
			return nil, nil, err
		}
	}
	return t, errors, nil
}

func isNumericColumn(records [][]string, j int) bool {
	for _, record := range records {
		cell := record[j]
		if NullTokens.Contains(cell) {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}

func parseCell(cell string, numeric bool) table.Value {
	if NullTokens.Contains(cell) {
		return table.NullValue()
	}
	if numeric {
		f, _ := strconv.ParseFloat(cell, 64)
		return table.Num(f)
	}
	return table.Str(cell)
}

// WriteTable writes t as CSV with a header line. Missing values are written
// as empty cells.
func WriteTable(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("error writing data header: %w", err)
	}
	record := make([]string, t.Width())
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadFile reads a CSV file, decompressing it according to its extension.
func ReadFile(fileName string) (*table.Table, []DataError, error) {
	input, err := OpenFile(fileName)
	if err != nil {
		return nil, nil, err
	}
	defer input.Close()

	t, dataErrors, err := ReadTable(input)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s: %w", fileName, err)
	}
	return t, dataErrors, nil
}

// WriteFile writes t to a CSV file, compressing it according to its extension.
func WriteFile(fileName string, t *table.Table) error {
	output, err := CreateFile(fileName)
	if err != nil {
		return err
	}
	if err := WriteTable(output, t); err != nil {
		output.Close()
		return fmt.Errorf("error writing %s: %w", fileName, err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", fileName, err)
	}
	return nil
}

func SaveModel(model *model.Model, writer io.Writer) error {
	encoder := gob.NewEncoder(writer)
	err := encoder.Encode(model)
	if err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	return nil
}

func LoadModel(input io.Reader) (*model.Model, error) {
	decoder := gob.NewDecoder(input)
	model := model.Model{}
	err := decoder.Decode(&model)
	if err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	return &model, nil

}
