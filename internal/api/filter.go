package api

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/thenoetrevino/tasktracker/internal/database"
)

// FilterSpec maps one task list query parameter onto a column and match mode.
type FilterSpec struct {
	Param  string
	Column database.TaskColumn
	Mode   database.MatchMode
}

// DefaultTaskFilters is the query parameter table of GET /api/task/.
var DefaultTaskFilters = []FilterSpec{
	{Param: "title", Column: database.TaskTitle, Mode: database.MatchContains},
	{Param: "project", Column: database.TaskProjectName, Mode: database.MatchExact},
	{Param: "status", Column: database.TaskStatusName, Mode: database.MatchExact},
	{Param: "assignee", Column: database.TaskAssigneeUsername, Mode: database.MatchExact},
	{Param: "reporter", Column: database.TaskReporterUsername, Mode: database.MatchExact},
	{Param: "descriptions", Column: database.TaskDescriptionText, Mode: database.MatchContains},
}

// searchColumns are matched by ?search=
var searchColumns = []database.TaskColumn{
	database.TaskTitle,
	database.TaskProjectName,
	database.TaskStatusName,
	database.TaskAssigneeUsername,
	database.TaskReporterUsername,
	database.TaskDescriptionText,
}

// searchParam is reserved for free-text search and cannot be a filter.
const searchParam = "search"

// TaskFilterTable turns list query parameters into a database.TaskFilter.
type TaskFilterTable struct {
	specs []FilterSpec
}

// NewTaskFilterTable validates specs. Unknown columns or modes, empty and
// duplicate parameter names, and the reserved "search" name are rejected.
func NewTaskFilterTable(specs []FilterSpec) (*TaskFilterTable, error) {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		switch {
		case spec.Param == "":
			return nil, fmt.Errorf("filter for %s has no parameter name", spec.Column)
		case spec.Param == searchParam:
			return nil, fmt.Errorf("filter parameter %q is reserved", spec.Param)
		case seen[spec.Param]:
			return nil, fmt.Errorf("duplicate filter parameter %q", spec.Param)
		case !spec.Column.Valid():
			return nil, fmt.Errorf("filter %q: unknown column %s", spec.Param, spec.Column)
		case !spec.Mode.Valid():
			return nil, fmt.Errorf("filter %q: unknown match mode %d", spec.Param, spec.Mode)
		}
		seen[spec.Param] = true
	}
	return &TaskFilterTable{specs: append([]FilterSpec(nil), specs...)}, nil
}

// Parse builds the filter for query. Empty parameters are ignored.
func (t *TaskFilterTable) Parse(query url.Values) database.TaskFilter {
	var filter database.TaskFilter
	for _, spec := range t.specs {
		value := query.Get(spec.Param)
		if value == "" {
			continue
		}
		filter.Conditions = append(filter.Conditions, database.TaskCondition{
			Column: spec.Column,
			Mode:   spec.Mode,
			Value:  value,
		})
	}

	if terms := searchTerms(query.Get(searchParam)); len(terms) > 0 {
		filter.SearchTerms = terms
		filter.SearchColumns = searchColumns
	}
	return filter
}

// searchTerms splits a search query on whitespace and commas.
func searchTerms(q string) []string {
	q = strings.ReplaceAll(q, "\x00", "")
	return strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
