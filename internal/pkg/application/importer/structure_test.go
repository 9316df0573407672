package importer

import (
	"errors"
	"testing"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	objecterrors "github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/matryer/is"
)

func levels(ls ...int) []blueprint.Row {
	rows := make([]blueprint.Row, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, blueprint.Row{Level: l, ClassName: "Folder"})
	}
	return rows
}

func TestParentIsNearestPrecedingRowOneLevelUp(t *testing.T) {
	is := is.New(t)

	s, err := AnalyzeStructure(levels(1, 2, 3, 2, 3, 3, 1, 2))
	is.NoErr(err)

	parents := []int{}
	for _, n := range s.Nodes {
		if n.Parent == nil {
			parents = append(parents, 0)
			continue
		}
		parents = append(parents, n.Parent.RowIndex())
	}

	is.Equal(parents, []int{0, 1, 2, 1, 4, 4, 0, 7})
	is.Equal(s.MaxLevel, 3)
	is.Equal(s.CountByLevel(), map[int]int{1: 2, 2: 3, 3: 3})
	is.Equal(s.Classes, []string{"Folder"})
}

func TestSourceRowIndexIsKept(t *testing.T) {
	is := is.New(t)

	s, err := AnalyzeStructure([]blueprint.Row{
		{Level: 1, ClassName: "Folder", SourceRowIndex: 5},
		{Level: 2, ClassName: "Site", SourceRowIndex: 9},
	})
	is.NoErr(err)
	is.Equal(s.Nodes[1].Parent.RowIndex(), 5)
	is.Equal(s.Classes, []string{"Folder", "Site"})
}

func TestStructuralErrors(t *testing.T) {
	is := is.New(t)

	for _, ls := range [][]int{
		{2},
		{1, 3},
		{1, 2, 2, 4},
		{1, 0},
		{1, -1},
	} {
		_, err := AnalyzeStructure(levels(ls...))
		is.True(errors.Is(err, objecterrors.ErrInvalidHierarchy)) // should be rejected
	}
}

func TestEmptyInputIsEmptyStructure(t *testing.T) {
	is := is.New(t)

	s, err := AnalyzeStructure(nil)
	is.NoErr(err)
	is.Equal(len(s.Levels), 0)
}
