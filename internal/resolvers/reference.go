package resolvers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// ProjectLookup finds projects by name.
type ProjectLookup interface {
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
}

// StatusLookup finds statuses by name.
type StatusLookup interface {
	GetStatusByName(ctx context.Context, name string) (*models.Status, error)
}

// UserLookup finds users by username.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupLookup finds groups by name.
type GroupLookup interface {
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)
}

// TaskLookup finds tasks by id.
type TaskLookup interface {
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
}

// lookupByKey decodes a scalar key from raw and fetches the object it names.
func lookupByKey[T any](ctx context.Context, raw json.RawMessage, object string, get func(context.Context, string) (T, error)) (T, error) {
	var zero T
	key, ok := scalarText(raw)
	if !ok {
		return zero, InvalidType("Incorrect type. Expected %s name, received %s.", strings.ToLower(object), rawKind(raw))
	}
	v, err := get(ctx, key)
	if errors.Is(err, models.ErrNotFound) {
		return zero, NotFound(object, key)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to resolve %s %q: %w", strings.ToLower(object), key, err)
	}
	return v, nil
}

// ProjectResolver writes projects as their name.
type ProjectResolver struct {
	Projects ProjectLookup
}

func (r ProjectResolver) Encode(p *models.Project) any {
	if p == nil {
		return nil
	}
	return p.Name
}

func (r ProjectResolver) Decode(ctx context.Context, raw json.RawMessage) (*models.Project, error) {
	return lookupByKey(ctx, raw, "Project", r.Projects.GetProjectByName)
}

// StatusResolver writes statuses as their name.
type StatusResolver struct {
	Statuses StatusLookup
}

func (r StatusResolver) Encode(s *models.Status) any {
	if s == nil {
		return nil
	}
	return s.Name
}

func (r StatusResolver) Decode(ctx context.Context, raw json.RawMessage) (*models.Status, error) {
	return lookupByKey(ctx, raw, "Status", r.Statuses.GetStatusByName)
}

// UserResolver writes users as their username.
type UserResolver struct {
	Users UserLookup
}

func (r UserResolver) Encode(u *models.User) any {
	if u == nil {
		return nil
	}
	return u.Username
}

func (r UserResolver) Decode(ctx context.Context, raw json.RawMessage) (*models.User, error) {
	return lookupByKey(ctx, raw, "User", r.Users.GetUserByUsername)
}

// GroupResolver writes groups as their name.
type GroupResolver struct {
	Groups GroupLookup
}

func (r GroupResolver) Encode(g *models.Group) any {
	if g == nil {
		return nil
	}
	return g.Name
}

func (r GroupResolver) Decode(ctx context.Context, raw json.RawMessage) (*models.Group, error) {
	return lookupByKey(ctx, raw, "Group", r.Groups.GetGroupByName)
}

// TaskResolver writes tasks as their id. It accepts a JSON integer or a
// string holding one.
type TaskResolver struct {
	Tasks TaskLookup
}

func (r TaskResolver) Encode(t *models.Task) any {
	if t == nil {
		return nil
	}
	return t.ID
}

func (r TaskResolver) Decode(ctx context.Context, raw json.RawMessage) (*models.Task, error) {
	var text string
	switch rawKind(raw) {
	case "int":
		text = literal(raw)
	case "str":
		text = strings.TrimSpace(literal(raw))
	default:
		return nil, InvalidType("%s: task id must be integer", literal(raw))
	}

	id, err := strconv.Atoi(text)
	if err != nil {
		return nil, InvalidType("%s: task id must be integer", literal(raw))
	}

	task, err := r.Tasks.GetTaskByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, NotFound("Task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task %d: %w", id, err)
	}
	return task, nil
}
