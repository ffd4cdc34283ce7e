// Package csv loads tabular.Sample rows from a CSV reader, generalizing the
// teacher's (wlattner/rf) parse.go: first-column target, remaining columns
// as the float64 feature row, optional header-row sniffing. Where the
// teacher's parsedInput auto-detects classification vs. regression by
// whether the first column parses as a float, this package exposes that
// decision as two entry points (ReadClassif, ReadRegress) so the caller
// states the problem type instead of the parser guessing.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hx-labs/xtrees/tabular"
)

// ClassifResult carries the parsed rows plus the variable names, mirroring the
// teacher's parsedInput.VarNames (synthesized as X1..Xn when the first row
// is not a header).
type ClassifResult struct {
	Rows     []tabular.ClassifSample
	Classes  []string
	VarNames []string
}

type RegressResult struct {
	Rows     []tabular.RegressSample
	VarNames []string
}

// ReadClassif parses r as CSV with the first column as a string class
// label and the rest as numeric features, assigning class indices in
// first-seen order.
func ReadClassif(r io.Reader) (*ClassifResult, error) {
	reader := csv.NewReader(r)

	row, err := reader.Read()
	if err != nil {
		return nil, err
	}

	varNames, header := parseHeader(row)
	res := &ClassifResult{VarNames: varNames}
	classIdx := make(map[string]int)

	parseRow := func(row []string) error {
		x, err := parseFeatureVals(row)
		if err != nil {
			return err
		}
		label := row[0]
		id, ok := classIdx[label]
		if !ok {
			id = len(classIdx)
			classIdx[label] = id
			res.Classes = append(res.Classes, label)
		}
		res.Rows = append(res.Rows, tabular.ClassifSample{X: x, Class: id})
		return nil
	}

	if !header {
		for i := range row[1:] {
			res.VarNames = append(res.VarNames, fmt.Sprintf("X%d", i+1))
		}
		if err := parseRow(row); err != nil {
			return nil, err
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := parseRow(row); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// ReadRegress parses r as CSV with the first column as a float64 target and
// the rest as numeric features.
func ReadRegress(r io.Reader) (*RegressResult, error) {
	reader := csv.NewReader(r)

	row, err := reader.Read()
	if err != nil {
		return nil, err
	}

	varNames, header := parseHeader(row)
	res := &RegressResult{VarNames: varNames}

	parseRow := func(row []string) error {
		x, err := parseFeatureVals(row)
		if err != nil {
			return err
		}
		y, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return fmt.Errorf("parsing regression target %q: %w", row[0], err)
		}
		res.Rows = append(res.Rows, tabular.RegressSample{X: x, Y: y})
		return nil
	}

	if !header {
		for i := range row[1:] {
			res.VarNames = append(res.VarNames, fmt.Sprintf("X%d", i+1))
		}
		if err := parseRow(row); err != nil {
			return nil, err
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := parseRow(row); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func parseFeatureVals(row []string) ([]float64, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("row only has one column")
	}
	x := make([]float64, len(row)-1)
	for i, val := range row[1:] {
		fv, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		x[i] = fv
	}
	return x, nil
}

// parseHeader reports whether row looks like a header (every value after
// the first column is non-numeric) and, if so, returns it as variable names.
// Grounded on the teacher's parseHeader in parse.go.
func parseHeader(row []string) (names []string, isHeader bool) {
	if len(row) <= 1 {
		return nil, false
	}
	for _, val := range row[1:] {
		if _, err := strconv.ParseFloat(val, 64); err == nil {
			return nil, false
		}
	}
	return append([]string(nil), row[1:]...), true
}
