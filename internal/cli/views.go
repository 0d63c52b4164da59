package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// ProjectView is the CLI rendering of a project.
type ProjectView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Tasks *int   `json:"tasks,omitempty"`
}

// GetID returns the project ID
func (v ProjectView) GetID() int { return v.ID }

func (v ProjectView) String() string {
	s := fmt.Sprintf("  %s %s", styles.LabelStyle.Render(fmt.Sprintf("[%d]", v.ID)), styles.ValueStyle.Render(v.Name))
	if v.Tasks != nil {
		s += styles.SubtitleStyle.Render(fmt.Sprintf(" (%d tasks)", *v.Tasks))
	}
	return s
}

// NewProjectView converts a project. tasks may be nil when the count is unknown.
func NewProjectView(p *models.Project, tasks *int) ProjectView {
	return ProjectView{ID: p.ID, Name: p.Name, Tasks: tasks}
}

// StatusView is the CLI rendering of a status.
type StatusView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GetID returns the status ID
func (v StatusView) GetID() int { return v.ID }

func (v StatusView) String() string {
	return fmt.Sprintf("  %s %s", styles.LabelStyle.Render(fmt.Sprintf("[%d]", v.ID)), styles.ValueStyle.Render(v.Name))
}

// NewStatusView converts a status
func NewStatusView(s *models.Status) StatusView {
	return StatusView{ID: s.ID, Name: s.Name}
}

// UserView is the CLI rendering of a user. The password hash is never shown.
type UserView struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	DateJoined string   `json:"date_joined"`
	Groups     []string `json:"groups"`
}

// GetID returns the user ID
func (v UserView) GetID() int { return v.ID }

func (v UserView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s", styles.LabelStyle.Render(fmt.Sprintf("[%d]", v.ID)), styles.ValueStyle.Render(v.Username))
	if v.Email != "" {
		fmt.Fprintf(&b, " <%s>", v.Email)
	}
	if len(v.Groups) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(" groups: " + strings.Join(v.Groups, ", ")))
	}
	return b.String()
}

// NewUserView converts a user
func NewUserView(u *models.User) UserView {
	groups := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		groups = append(groups, g.Name)
	}
	return UserView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		DateJoined: u.DateJoined.UTC().Format(time.RFC3339),
		Groups:     groups,
	}
}

// Views converts a slice with fn
func Views[M any, V any](items []M, fn func(M) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
