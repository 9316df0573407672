package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type Format string

const (
	Delimited Format = "delimited"
	Workbook  Format = "workbook"
)

type Column struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Layout tells where the level, class and name of an object are found in the
// input. Columns are zero based.
type Layout struct {
	Format           Format   `json:"format"`
	HasHeader        bool     `json:"hasHeader"`
	LevelColumn      int      `json:"levelColumn"`
	ClassColumn      int      `json:"classColumn"`
	NameColumn       int      `json:"nameColumn"`
	AttributeColumns []Column `json:"attributeColumns"`
}

type Reader struct {
	input     io.Reader
	aliases   blueprint.Aliases
	delimiter rune
	layout    Layout
}

func Delimiter(d rune) func(*Reader) {
	return func(r *Reader) {
		r.delimiter = d
	}
}

func NewReader(input io.Reader, aliases blueprint.Aliases, options ...func(*Reader)) *Reader {
	r := &Reader{
		input:   input,
		aliases: aliases.WithDefaults(),
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// Layout returns the layout found by the last call to ReadRows
func (r *Reader) Layout() Layout {
	return r.layout
}

// ReadRows parses the input as an xlsx workbook, of which the first sheet is
// read, or else as delimited text. If the first line names the
// level, class and name columns it is used as a header, otherwise the first
// three columns are taken to be level, class and name. Rows without a level or
// a class are skipped and rows without a name are named after their class.
// Attribute cells are returned as trimmed text.
func (r *Reader) ReadRows(ctx context.Context) ([]blueprint.Row, error) {
	content, err := io.ReadAll(r.input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var records [][]string
	var lines []int

	format := Delimited
	if isWorkbook(content) {
		format = Workbook
		records, lines, err = readWorkbook(content)
	} else {
		records, lines, err = r.readDelimited(content)
	}
	if err != nil {
		return nil, err
	}

	records, lines = dropBlank(records, lines)

	if len(records) == 0 {
		r.layout = Layout{Format: format}
		return []blueprint.Row{}, nil
	}

	r.layout = r.detectLayout(records[0])
	r.layout.Format = format

	log := logging.GetFromContext(ctx)
	log.Debug("detected input layout", "format", format, "header", r.layout.HasHeader,
		"level", r.layout.LevelColumn, "class", r.layout.ClassColumn, "name", r.layout.NameColumn,
		"attributes", len(r.layout.AttributeColumns))

	first := 0
	if r.layout.HasHeader {
		first = 1
	}

	rows := make([]blueprint.Row, 0, len(records)-first)

	for i := first; i < len(records); i++ {
		record := records[i]
		lineNumber := lines[i]

		levelText := cell(record, r.layout.LevelColumn)
		className := cell(record, r.layout.ClassColumn)
		if levelText == "" || className == "" {
			continue
		}

		level, err := parseLevel(levelText)
		if err != nil {
			return nil, errors.NewInvalidHierarchyError(lineNumber, 0, fmt.Sprintf("level %q is not a whole number", levelText))
		}

		objectName := cell(record, r.layout.NameColumn)
		if objectName == "" {
			objectName = className
		}

		row := blueprint.Row{
			Level:          level,
			ClassName:      className,
			ObjectName:     objectName,
			Fields:         map[string]any{},
			SourceRowIndex: lineNumber,
		}

		for _, col := range r.layout.AttributeColumns {
			if v := cell(record, col.Index); v != "" {
				row.Fields[col.Name] = v
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (r *Reader) readDelimited(content []byte) ([][]string, []int, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	delimiter := r.delimiter
	if delimiter == 0 {
		delimiter = detectDelimiter(content)
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records := [][]string{}
	lines := []int{}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse input: %w", err)
		}

		line, _ := cr.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	return records, lines, nil
}

func dropBlank(records [][]string, lines []int) ([][]string, []int) {
	keptRecords := make([][]string, 0, len(records))
	keptLines := make([]int, 0, len(lines))

	for i, record := range records {
		for _, c := range record {
			if strings.TrimSpace(c) != "" {
				keptRecords = append(keptRecords, record)
				keptLines = append(keptLines, lines[i])
				break
			}
		}
	}

	return keptRecords, keptLines
}

func (r *Reader) detectLayout(first []string) Layout {
	levelCol := findColumn(first, r.aliases.Level)
	classCol := findColumn(first, r.aliases.Class)
	nameCol := findColumn(first, r.aliases.Name)

	if levelCol < 0 || classCol < 0 || nameCol < 0 {
		return Layout{LevelColumn: 0, ClassColumn: 1, NameColumn: 2, AttributeColumns: []Column{}}
	}

	layout := Layout{
		HasHeader:        true,
		LevelColumn:      levelCol,
		ClassColumn:      classCol,
		NameColumn:       nameCol,
		AttributeColumns: []Column{},
	}

	for i, header := range first {
		header = strings.TrimSpace(header)
		if i == levelCol || i == classCol || i == nameCol || header == "" {
			continue
		}

		if isAlias(header, r.aliases.Name) || strings.EqualFold(header, "nan") || strings.EqualFold(header, "none") {
			continue
		}

		layout.AttributeColumns = append(layout.AttributeColumns, Column{Index: i, Name: header})
	}

	return layout
}

// findColumn returns the first column whose header contains one of the aliases
func findColumn(headers []string, aliases []string) int {
	for i, h := range headers {
		h = strings.ToLower(h)
		for _, alias := range aliases {
			if strings.Contains(h, strings.ToLower(alias)) {
				return i
			}
		}
	}
	return -1
}

func isAlias(header string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(header, alias) {
			return true
		}
	}
	return false
}

func detectDelimiter(content []byte) rune {
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		line = content[:idx]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{';', '\t', ','} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseLevel(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number: %s", s)
	}

	return int(f), nil
}
