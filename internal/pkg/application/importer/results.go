package importer

import (
	"time"
)

type Outcome string

const (
	NothingCreated   Outcome = "nothing"
	PartiallyCreated Outcome = "partial"
	AllCreated       Outcome = "complete"
)

const (
	ReasonParentFailed string = "parent failed"
	ReasonCancelled    string = "cancelled"
)

type CreatedObject struct {
	Row       int    `json:"row"`
	Level     int    `json:"level"`
	ClassName string `json:"className"`
	Name      string `json:"name"`
	ID        string `json:"id"`
	ParentID  string `json:"parentId"`
}

type RowError struct {
	Row    int    `json:"row"`
	Level  int    `json:"level"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

type RowWarning struct {
	Row     int      `json:"row"`
	Ignored []string `json:"ignoredFields"`
}

type ImportResult struct {
	RunID          string          `json:"runId"`
	ParentID       string          `json:"parentId"`
	TotalRows      int             `json:"totalRows"`
	TotalCreated   int             `json:"totalCreated"`
	CreatedByLevel map[int]int     `json:"createdByLevel"`
	Created        []CreatedObject `json:"created"`
	Errors         []RowError      `json:"errors"`
	Warnings       []RowWarning    `json:"warnings,omitempty"`
	Started        time.Time       `json:"started"`
	Duration       time.Duration   `json:"duration"`
}

// Outcome tells whether nothing, everything or only some of the rows were created
func (r *ImportResult) Outcome() Outcome {
	if r.TotalCreated == 0 {
		return NothingCreated
	}
	if len(r.Errors) == 0 {
		return AllCreated
	}
	return PartiallyCreated
}

func (r *ImportResult) FailedRows() []int {
	rows := make([]int, 0, len(r.Errors))
	for _, e := range r.Errors {
		rows = append(rows, e.Row)
	}
	return rows
}

type PlannedObject struct {
	Row        int            `json:"row"`
	Level      int            `json:"level"`
	ParentRow  int            `json:"parentRow,omitempty"`
	ClassID    string         `json:"classId"`
	ClassName  string         `json:"className"`
	ObjectName string         `json:"objectName"`
	Values     map[string]any `json:"values,omitempty"`
	Ignored    []string       `json:"ignoredFields,omitempty"`
}

// Preview describes what an import would create without creating anything
type Preview struct {
	ParentID       string          `json:"parentId"`
	TotalRows      int             `json:"totalRows"`
	MaxLevel       int             `json:"maxLevel"`
	ObjectsByLevel map[int]int     `json:"objectsByLevel"`
	Classes        []string        `json:"classes"`
	Planned        []PlannedObject `json:"planned"`
	Errors         []RowError      `json:"errors"`
}
