package database

import (
	"fmt"
	"strings"
)

// TaskColumn names a task attribute that list queries can match on.
type TaskColumn int

const (
	TaskTitle TaskColumn = iota + 1
	TaskProjectName
	TaskStatusName
	TaskAssigneeUsername
	TaskReporterUsername
	TaskDescriptionText
)

var taskColumnNames = map[TaskColumn]string{
	TaskTitle:            "title",
	TaskProjectName:      "project name",
	TaskStatusName:       "status name",
	TaskAssigneeUsername: "assignee username",
	TaskReporterUsername: "reporter username",
	TaskDescriptionText:  "description text",
}

// Valid reports whether c is a known column.
func (c TaskColumn) Valid() bool {
	_, ok := taskColumnNames[c]
	return ok
}

func (c TaskColumn) String() string {
	if name, ok := taskColumnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("TaskColumn(%d)", int(c))
}

// MatchMode selects how a condition value is compared.
type MatchMode int

const (
	// MatchExact compares for equality.
	MatchExact MatchMode = iota + 1
	// MatchContains is a case-insensitive substring match.
	MatchContains
)

// Valid reports whether m is a known mode.
func (m MatchMode) Valid() bool {
	return m == MatchExact || m == MatchContains
}

// TaskCondition restricts a task list to tasks whose Column matches Value.
// For TaskDescriptionText a task matches when any of its descriptions does.
type TaskCondition struct {
	Column TaskColumn
	Mode   MatchMode
	Value  string
}

// TaskFilter narrows a task list. Every condition must hold. Each search
// term must match at least one of SearchColumns as a case-insensitive
// substring.
type TaskFilter struct {
	Conditions    []TaskCondition
	SearchTerms   []string
	SearchColumns []TaskColumn
}

// columnExpr is the SQL expression for a joined, non-description column.
func columnExpr(c TaskColumn) string {
	switch c {
	case TaskTitle:
		return "t.title"
	case TaskProjectName:
		return "p.name"
	case TaskStatusName:
		return "s.name"
	case TaskAssigneeUsername:
		return "a.username"
	case TaskReporterUsername:
		return "r.username"
	}
	return ""
}

// match renders one column comparison and its argument.
func match(c TaskColumn, mode MatchMode, value string) (string, any, error) {
	if c == TaskDescriptionText {
		inner, arg, err := matchExpr("d.text", mode, value)
		if err != nil {
			return "", nil, err
		}
		return "EXISTS (SELECT 1 FROM descriptions d WHERE d.task_id = t.id AND " + inner + ")", arg, nil
	}
	expr := columnExpr(c)
	if expr == "" {
		return "", nil, fmt.Errorf("unknown task column %s", c)
	}
	return matchExpr(expr, mode, value)
}

func matchExpr(expr string, mode MatchMode, value string) (string, any, error) {
	switch mode {
	case MatchExact:
		return expr + " = ?", value, nil
	case MatchContains:
		return "LOWER(" + expr + `) LIKE ? ESCAPE '\'`, containsPattern(value), nil
	default:
		return "", nil, fmt.Errorf("unknown match mode %d", int(mode))
	}
}

// where renders the filter as a WHERE clause (without the keyword) and its
// arguments. An empty filter renders as "".
func (f TaskFilter) where() (string, []any, error) {
	var clauses []string
	var args []any

	for _, cond := range f.Conditions {
		clause, arg, err := match(cond.Column, cond.Mode, cond.Value)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, arg)
	}

	if len(f.SearchColumns) > 0 {
		for _, term := range f.SearchTerms {
			alternatives := make([]string, 0, len(f.SearchColumns))
			for _, col := range f.SearchColumns {
				clause, arg, err := match(col, MatchContains, term)
				if err != nil {
					return "", nil, err
				}
				alternatives = append(alternatives, clause)
				args = append(args, arg)
			}
			clauses = append(clauses, "("+strings.Join(alternatives, " OR ")+")")
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}
