package importer

import (
	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
)

// Node is a row placed in the import forest. ID is assigned once the object has
// been created.
type Node struct {
	Row    blueprint.Row
	Parent *Node

	ID      string
	created bool
	err     error
	reason  string
	ignored []string
}

func (n *Node) RowIndex() int {
	return n.Row.SourceRowIndex
}

type Structure struct {
	Nodes    []*Node
	Levels   [][]*Node
	MaxLevel int
	Classes  []string
}

func (s *Structure) CountByLevel() map[int]int {
	counts := make(map[int]int, len(s.Levels))
	for i, nodes := range s.Levels {
		counts[i+1] = len(nodes)
	}
	return counts
}

// AnalyzeStructure places every row under its parent and groups the rows by
// level. The parent of a row at level L is the nearest preceding row at level
// L-1, rows at level 1 have no parent node. The first row must be at level 1
// and no row may be more than one level deeper than the row before it.
func AnalyzeStructure(rows []blueprint.Row) (*Structure, error) {
	s := &Structure{
		Nodes: make([]*Node, 0, len(rows)),
	}

	// last seen node per level, stack[0] is level 1
	stack := make([]*Node, 0, 8)
	seenClasses := map[string]bool{}

	for i, row := range rows {
		if row.SourceRowIndex <= 0 {
			row.SourceRowIndex = i + 1
		}

		level := row.Level
		if level < 1 {
			return nil, errors.NewInvalidHierarchyError(row.SourceRowIndex, level, "level must be 1 or greater")
		}

		if level > len(stack)+1 {
			if i == 0 {
				return nil, errors.NewInvalidHierarchyError(row.SourceRowIndex, level, "the first row must be at level 1")
			}
			return nil, errors.NewInvalidHierarchyError(row.SourceRowIndex, level,
				"jumps more than one level below the preceding row")
		}

		node := &Node{Row: row}
		if level > 1 {
			node.Parent = stack[level-2]
		}

		stack = append(stack[:level-1], node)

		s.Nodes = append(s.Nodes, node)

		for len(s.Levels) < level {
			s.Levels = append(s.Levels, []*Node{})
		}
		s.Levels[level-1] = append(s.Levels[level-1], node)

		if level > s.MaxLevel {
			s.MaxLevel = level
		}

		if row.ClassName != "" && !seenClasses[row.ClassName] {
			seenClasses[row.ClassName] = true
			s.Classes = append(s.Classes, row.ClassName)
		}
	}

	return s, nil
}
