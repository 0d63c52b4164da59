package models

// Project groups tasks under a short unique name.
type Project struct {
	ID   int
	Name string
}

// GetID returns the project ID
func (p *Project) GetID() int { return p.ID }
