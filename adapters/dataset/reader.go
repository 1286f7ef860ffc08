package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"goregress/domain/frame"

	"github.com/xuri/excelize/v2"
)

// readCSV reads a delimited text file into a frame. The first row is
// the header.
func readCSV(path, fileType string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", fileType, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if fileType == "tsv" {
		reader.Comma = '\t'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", fileType, err)
	}

	return fromRows(rows)
}

// readXLSX reads the first sheet of an Excel workbook into a frame.
func readXLSX(path string) (*frame.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return fromRows(rows)
}

func fromRows(rows [][]string) (*frame.Frame, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset must have a header row and at least one data row")
	}
	header := rows[0]

	// excelize truncates trailing empty cells; pad short rows so the
	// frame sees a rectangle
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		data = append(data, row[:len(header)])
	}

	return frame.New(header, data)
}
