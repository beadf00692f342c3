package services

import (
	"encoding/csv"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/xuri/excelize/v2"
)

type sheetRow struct {
	// Num is the 1-based line in the file; the header is line 1.
	Num    int
	Fields map[string]string
}

// readSheet parses an uploaded .csv or .xlsx file into header-keyed rows.
// Headers are matched case-insensitively; fully blank rows are skipped.
func readSheet(fileName string, body io.Reader) ([]sheetRow, error) {
	var (
		grid [][]string
		err  error
	)
	switch strings.ToLower(path.Ext(fileName)) {
	case ".csv":
		r := csv.NewReader(body)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		grid, err = r.ReadAll()
	case ".xlsx":
		grid, err = readXLSX(body)
	default:
		return nil, apperr.Validation("file", "only CSV or XLSX files are supported")
	}
	if err != nil {
		return nil, apperr.Validation("file", "failed to process file: "+err.Error())
	}
	if len(grid) == 0 {
		return nil, apperr.Validation("file", "file is empty")
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	rows := make([]sheetRow, 0, len(grid)-1)
	for n, line := range grid[1:] {
		row := make(map[string]string, len(header))
		blank := true
		for i, h := range header {
			if i < len(line) {
				row[h] = strings.TrimSpace(line[i])
				blank = blank && row[h] == ""
			}
		}
		if blank {
			continue
		}
		rows = append(rows, sheetRow{Num: n + 2, Fields: row})
	}
	return rows, nil
}

func readXLSX(body io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(body)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
