package tabular

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	objecterrors "github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/matryer/is"
	"github.com/xuri/excelize/v2"
)

func TestReadRowsWithHeader(t *testing.T) {
	is := is.New(t)

	input := "\xef\xbb\xbfУровень;Класс;Имя объекта;MVZ;Количество;Наименование\n" +
		"1;Folder;A;;;\n" +
		"2;Folder;B;;;\n" +
		"3;Site;C;X;12;ignored\n"

	r := NewReader(strings.NewReader(input), blueprint.Aliases{})
	rows, err := r.ReadRows(context.Background())
	is.NoErr(err)

	layout := r.Layout()
	is.True(layout.HasHeader)
	is.Equal(layout.AttributeColumns, []Column{{Index: 3, Name: "MVZ"}, {Index: 4, Name: "Количество"}})

	is.Equal(len(rows), 3)
	is.Equal(rows[0].SourceRowIndex, 2)
	is.Equal(rows[2].Level, 3)
	is.Equal(rows[2].ClassName, "Site")
	is.Equal(rows[2].ObjectName, "C")
	is.Equal(rows[2].Fields, map[string]any{"MVZ": "X", "Количество": "12"})
	is.Equal(len(rows[0].Fields), 0)
}

func TestReadRowsWithoutHeaderUsesFirstThreeColumns(t *testing.T) {
	is := is.New(t)

	input := "1,Folder,A\n2,Site,B\n"

	r := NewReader(strings.NewReader(input), blueprint.Aliases{})
	rows, err := r.ReadRows(context.Background())
	is.NoErr(err)

	is.True(!r.Layout().HasHeader)
	is.Equal(len(rows), 2)
	is.Equal(rows[0].SourceRowIndex, 1)
	is.Equal(rows[1].ClassName, "Site")
}

func TestMissingNameFallsBackToClassName(t *testing.T) {
	is := is.New(t)

	input := "Level\tClass\tName\n1\tFolder\t\n\t\t\n2\tSite\tB\n"

	rows, err := NewReader(strings.NewReader(input), blueprint.Aliases{}).ReadRows(context.Background())
	is.NoErr(err)

	is.Equal(len(rows), 2) // the empty row is skipped
	is.Equal(rows[0].ObjectName, "Folder")
	is.Equal(rows[1].SourceRowIndex, 4)
}

func TestNonNumericLevelIsRejected(t *testing.T) {
	is := is.New(t)

	input := "Level;Class;Name\nfirst;Folder;A\n"

	_, err := NewReader(strings.NewReader(input), blueprint.Aliases{}).ReadRows(context.Background())
	is.True(errors.Is(err, objecterrors.ErrInvalidHierarchy))
}

func TestCellsAreKeptAsWritten(t *testing.T) {
	is := is.New(t)

	input := "Level;Class;Name;Phone;Price;Inspected;Approved\n" +
		"1;Site;A;+79161234567;1.50;31.01.2024;Да\n"

	rows, err := NewReader(strings.NewReader(input), blueprint.Aliases{}).ReadRows(context.Background())
	is.NoErr(err)

	is.Equal(rows[0].Fields, map[string]any{
		"Phone":     "+79161234567",
		"Price":     "1.50",
		"Inspected": "31.01.2024",
		"Approved":  "Да",
	})
}

func TestExplicitDelimiter(t *testing.T) {
	is := is.New(t)

	input := "Level|Class|Name\n1|Folder|A;B\n"

	rows, err := NewReader(strings.NewReader(input), blueprint.Aliases{}, Delimiter('|')).ReadRows(context.Background())
	is.NoErr(err)
	is.Equal(rows[0].ObjectName, "A;B")
}

func TestReadRowsFromWorkbook(t *testing.T) {
	is := is.New(t)

	f := excelize.NewFile()
	defer f.Close()

	is.NoErr(f.SetSheetRow("Sheet1", "A1", &[]any{"Уровень", "Класс", "Имя объекта", "Телефон", "Количество"}))
	is.NoErr(f.SetSheetRow("Sheet1", "A2", &[]any{1, "Folder", "A"}))
	is.NoErr(f.SetSheetRow("Sheet1", "A4", &[]any{2, "Site", "B", "+79161234567", 12}))

	b, err := f.WriteToBuffer()
	is.NoErr(err)

	r := NewReader(bytes.NewReader(b.Bytes()), blueprint.Aliases{})
	rows, err := r.ReadRows(context.Background())
	is.NoErr(err)

	layout := r.Layout()
	is.Equal(layout.Format, Workbook)
	is.True(layout.HasHeader)
	is.Equal(layout.AttributeColumns, []Column{{Index: 3, Name: "Телефон"}, {Index: 4, Name: "Количество"}})

	is.Equal(len(rows), 2)
	is.Equal(rows[0].SourceRowIndex, 2)
	is.Equal(rows[1].SourceRowIndex, 4) // the empty sheet row is skipped but counted
	is.Equal(rows[1].Level, 2)
	is.Equal(rows[1].ObjectName, "B")
	is.Equal(rows[1].Fields, map[string]any{"Телефон": "+79161234567", "Количество": "12"})
}

func TestDelimitedTextIsNotTakenForWorkbook(t *testing.T) {
	is := is.New(t)

	r := NewReader(strings.NewReader("Level;Class;Name\n1;Folder;A\n"), blueprint.Aliases{})
	_, err := r.ReadRows(context.Background())
	is.NoErr(err)
	is.Equal(r.Layout().Format, Delimited)
}
