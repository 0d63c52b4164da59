package serializers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/resolvers"
)

// UserSerializer validates user writes and renders users.
type UserSerializer struct {
	users    resolvers.UserLookup
	username resolvers.Text
	email    resolvers.Email
	password resolvers.Text
	groups   resolvers.Many[*models.Group]
	group    resolvers.GroupResolver
}

func NewUserSerializer(store Lookups) *UserSerializer {
	group := resolvers.GroupResolver{Groups: store}
	return &UserSerializer{
		users:    store,
		username: resolvers.Text{MaxLength: models.MaxUsernameLength},
		email:    resolvers.Email{MaxLength: models.MaxEmailLength},
		password: resolvers.Text{KeepWhitespace: true},
		groups:   resolvers.Many[*models.Group]{Child: group},
		group:    group,
	}
}

// UserInput holds the validated fields of a user write. A nil field was
// not submitted.
type UserInput struct {
	Username *string
	Email    *string
	Password *string
	Groups   []*models.Group // nil when not submitted
}

// Validate checks p. username is required on a full write and must not be
// taken by a user other than existing.
func (s *UserSerializer) Validate(ctx context.Context, p Payload, partial bool, existing *models.User) (*UserInput, error) {
	errs := ValidationErrors{}
	in := &UserInput{}
	required := !partial

	username, ok, err := decodeField(ctx, p, "username", required, s.username.Decode, errs)
	if err != nil {
		return nil, err
	}
	if ok {
		taken, err := s.usernameTaken(ctx, username, existing)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", resolvers.Invalid("A user with that username already exists."))
		} else {
			in.Username = &username
		}
	}

	email, ok, err := decodeField(ctx, p, "email", false, s.email.Decode, errs)
	if err != nil {
		return nil, err
	}
	if ok {
		in.Email = &email
	}

	password, ok, err := decodeField(ctx, p, "password", false, s.password.Decode, errs)
	if err != nil {
		return nil, err
	}
	if ok {
		in.Password = &password
	}

	if in.Groups, _, err = decodeField(ctx, p, "groups", false, s.groups.Decode, errs); err != nil {
		return nil, err
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *UserSerializer) usernameTaken(ctx context.Context, username string, existing *models.User) (bool, error) {
	other, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return existing == nil || other.ID != existing.ID, nil
}

// UserRepresentation is the response body of a user. The password is
// write-only and never rendered.
type UserRepresentation struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Groups   any    `json:"groups"`
}

// Represent renders u with its URL under baseURL (scheme and host).
func (s *UserSerializer) Represent(u *models.User, baseURL string) UserRepresentation {
	return UserRepresentation{
		URL:      resourceURL(baseURL, "users", u.ID),
		Username: u.Username,
		Email:    u.Email,
		Groups:   s.groups.Encode(u.Groups),
	}
}

func (s *UserSerializer) RepresentList(users []*models.User, baseURL string) []UserRepresentation {
	out := make([]UserRepresentation, 0, len(users))
	for _, u := range users {
		out = append(out, s.Represent(u, baseURL))
	}
	return out
}

// GroupSerializer validates group writes and renders groups.
type GroupSerializer struct {
	groups resolvers.GroupLookup
	name   resolvers.Text
}

func NewGroupSerializer(store Lookups) *GroupSerializer {
	return &GroupSerializer{
		groups: store,
		name:   resolvers.Text{MaxLength: models.MaxGroupNameLength},
	}
}

// Validate checks p and returns the group name, or "" when a partial write
// omitted it.
func (s *GroupSerializer) Validate(ctx context.Context, p Payload, partial bool, existing *models.Group) (string, error) {
	errs := ValidationErrors{}

	name, ok, err := decodeField(ctx, p, "name", !partial, s.name.Decode, errs)
	if err != nil {
		return "", err
	}
	if ok {
		other, err := s.groups.GetGroupByName(ctx, name)
		switch {
		case errors.Is(err, models.ErrNotFound):
		case err != nil:
			return "", fmt.Errorf("failed to check group name: %w", err)
		case existing == nil || other.ID != existing.ID:
			errs.Add("name", resolvers.Invalid("group with this name already exists."))
		}
	}

	if err := errs.errOrNil(); err != nil {
		return "", err
	}
	return name, nil
}

// GroupRepresentation is the response body of a group.
type GroupRepresentation struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

func (s *GroupSerializer) Represent(g *models.Group, baseURL string) GroupRepresentation {
	return GroupRepresentation{URL: resourceURL(baseURL, "groups", g.ID), Name: g.Name}
}

func (s *GroupSerializer) RepresentList(groups []*models.Group, baseURL string) []GroupRepresentation {
	out := make([]GroupRepresentation, 0, len(groups))
	for _, g := range groups {
		out = append(out, s.Represent(g, baseURL))
	}
	return out
}

func resourceURL(baseURL, collection string, id int) string {
	return fmt.Sprintf("%s/api/%s/%d/", strings.TrimSuffix(baseURL, "/"), collection, id)
}

// Credentials is a validated token request.
type Credentials struct {
	Username string
	Password string
}

// ValidateCredentials checks a token request body.
func ValidateCredentials(ctx context.Context, p Payload) (*Credentials, error) {
	errs := ValidationErrors{}
	username, _, err := decodeField(ctx, p, "username", true, resolvers.Text{}.Decode, errs)
	if err != nil {
		return nil, err
	}
	password, _, err := decodeField(ctx, p, "password", true, resolvers.Text{KeepWhitespace: true}.Decode, errs)
	if err != nil {
		return nil, err
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return &Credentials{Username: username, Password: password}, nil
}
