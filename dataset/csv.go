package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Missing-value spellings accepted in CSV cells.
func isMissingToken(s string) bool {
	switch s {
	case "", "NA", "NaN":
		return true
	}
	return false
}

// ReadCSV loads a delimited file with a header row into a Table.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	return ReadCSVFrom(file)
}

// ReadCSVFrom loads CSV data from a reader into a Table. The first record
// is the header. Column types are inferred: a column is numeric when every
// non-missing cell parses as a float, categorical otherwise. Missing cells
// ("", "NA", "NaN") become NaN in numeric columns and "" in categorical
// ones.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV")
	}
	if len(records) < 1 {
		return nil, errors.NewInvalidInputError("dataset.ReadCSVFrom", "", "no header row")
	}

	header := records[0]
	body := records[1:]

	cols := make([]Column, len(header))
	for j, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, len(body))
		numeric := true
		allMissing := true
		for i, rec := range body {
			if len(rec) != len(header) {
				return nil, errors.NewDimensionError("dataset.ReadCSVFrom", len(header), len(rec), 1)
			}
			cell := strings.TrimSpace(rec[j])
			cells[i] = cell
			if isMissingToken(cell) {
				continue
			}
			allMissing = false
			if _, perr := strconv.ParseFloat(cell, 64); perr != nil {
				numeric = false
			}
		}

		// Entirely-missing columns stay numeric (all NaN); downstream
		// transforms decide whether that is an error.
		if numeric || allMissing {
			values := make([]float64, len(cells))
			for i, cell := range cells {
				if isMissingToken(cell) {
					values[i] = math.NaN()
					continue
				}
				v, _ := strconv.ParseFloat(cell, 64)
				values[i] = v
			}
			cols[j] = NumericColumn(name, values)
		} else {
			values := make([]string, len(cells))
			for i, cell := range cells {
				if isMissingToken(cell) {
					values[i] = ""
					continue
				}
				values[i] = cell
			}
			cols[j] = CategoricalColumn(name, values)
		}
	}

	return New(cols...)
}
