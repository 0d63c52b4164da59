package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/serializers"
	identityservice "github.com/thenoetrevino/tasktracker/internal/services/identity"
)

// listUsers serves GET /api/users/, most recently joined first.
func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.app.IdentityService.ListUsers(c.Request.Context())
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.users.RepresentList(users, baseURL(c)))
}

func (h *handlers) createUser(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.users.Validate(ctx, p, false, nil)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	user, err := h.app.IdentityService.CreateUser(ctx, identityservice.CreateUserRequest{
		Username: *in.Username,
		Email:    deref(in.Email),
		Password: deref(in.Password),
		GroupIDs: groupIDs(in.Groups),
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.users.Represent(user, baseURL(c)))
}

func (h *handlers) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.app.IdentityService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.users.Represent(user, baseURL(c)))
}

func (h *handlers) replaceUser(c *gin.Context) { h.updateUser(c, false) }

func (h *handlers) patchUser(c *gin.Context) { h.updateUser(c, true) }

func (h *handlers) updateUser(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id, ok := pathID(c)
	if !ok {
		return
	}
	existing, err := h.app.IdentityService.GetUser(ctx, id)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.users.Validate(ctx, p, partial, existing)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	user, err := h.app.IdentityService.UpdateUser(ctx, identityservice.UpdateUserRequest{
		ID:       id,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		GroupIDs: groupIDs(in.Groups),
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.users.Represent(user, baseURL(c)))
}

func (h *handlers) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.app.IdentityService.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listGroups(c *gin.Context) {
	groups, err := h.app.IdentityService.ListGroups(c.Request.Context())
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.groups.RepresentList(groups, baseURL(c)))
}

func (h *handlers) createGroup(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	name, err := h.groups.Validate(ctx, p, false, nil)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	group, err := h.app.IdentityService.CreateGroup(ctx, name)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.groups.Represent(group, baseURL(c)))
}

func (h *handlers) getGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	group, err := h.app.IdentityService.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.groups.Represent(group, baseURL(c)))
}

// replaceGroup serves PUT and PATCH. A group has a single writable field,
// so a PATCH without a name leaves the group as is.
func (h *handlers) replaceGroup(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := pathID(c)
	if !ok {
		return
	}
	group, err := h.app.IdentityService.GetGroup(ctx, id)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	name, err := h.groups.Validate(ctx, p, c.Request.Method == http.MethodPatch, group)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	if name != "" {
		if group, err = h.app.IdentityService.RenameGroup(ctx, id, name); err != nil {
			h.respondErr(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.groups.Represent(group, baseURL(c)))
}

func (h *handlers) deleteGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.app.IdentityService.DeleteGroup(c.Request.Context(), id); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// obtainToken serves POST /api/token/, exchanging a username and password
// for a bearer token.
func (h *handlers) obtainToken(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	creds, err := serializers.ValidateCredentials(ctx, p)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	user, err := h.auth.CheckCredentials(ctx, creds.Username, creds.Password)
	if err != nil {
		if auth.IsAuthError(err) {
			h.metrics.IncAuthFailures()
			c.JSON(http.StatusBadRequest, gin.H{serializers.NonFieldErrors: []string{detailLoginFailed}})
			return
		}
		h.respondErr(c, err)
		return
	}

	token, expires, err := h.auth.IssueToken(user)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"expires": serializers.Timestamp(expires.UTC()),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// groupIDs keeps nil (not submitted) distinct from an empty list.
func groupIDs(groups []*models.Group) []int {
	if groups == nil {
		return nil
	}
	ids := make([]int, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}
