package models

// Status is a workflow state a task can be in, e.g. "NEW" or "DONE".
type Status struct {
	ID   int
	Name string
}

// GetID returns the status ID
func (s *Status) GetID() int { return s.ID }
