package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// xlsx files are zip archives
var zipSignature = []byte("PK\x03\x04")

func isWorkbook(content []byte) bool {
	return bytes.HasPrefix(content, zipSignature)
}

// readWorkbook returns the rows of the first sheet with the cells formatted the
// way the workbook displays them. Line numbers are the row numbers of the sheet.
func readWorkbook(content []byte) ([][]string, []int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return [][]string{}, []int{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	lines := make([]int, len(records))
	for i := range records {
		lines[i] = i + 1
	}

	return records, lines, nil
}
