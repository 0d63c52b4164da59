// Package api serves the tracker's JSON resources over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tasktracker/internal/app"
	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/serializers"
)

const (
	healthPath = "/healthz"
	tokenPath  = "/api/token/"
)

// publicPaths are served without credentials.
var publicPaths = map[string]struct{}{
	healthPath: {},
	tokenPath:  {},
}

// handlers holds what every endpoint needs.
type handlers struct {
	app      *app.App
	auth     *auth.Authenticator
	logger   *slog.Logger
	metrics  *Metrics
	filters  *TaskFilterTable
	tasks    *serializers.TaskSerializer
	comments *serializers.CommentSerializer
	users    *serializers.UserSerializer
	groups   *serializers.GroupSerializer
}

// NewRouter builds the gin engine serving every route. It fails if the task
// filter table is invalid.
func NewRouter(a *app.App, metrics *Metrics) (*gin.Engine, error) {
	filters, err := NewTaskFilterTable(DefaultTaskFilters)
	if err != nil {
		return nil, fmt.Errorf("invalid task filter table: %w", err)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	store := a.Repo()
	h := &handlers{
		app:      a,
		auth:     a.Auth,
		logger:   a.Logger,
		metrics:  metrics,
		filters:  filters,
		tasks:    serializers.NewTaskSerializer(store),
		comments: serializers.NewCommentSerializer(store),
		users:    serializers.NewUserSerializer(store),
		groups:   serializers.NewGroupSerializer(store),
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), trackMetrics(metrics), requestLogger(h.logger), gin.CustomRecovery(h.recovered))
	r.NoRoute(h.noRoute)
	r.NoMethod(h.noMethod)

	r.GET(healthPath, h.health)
	r.POST(tokenPath, h.obtainToken)

	protected := r.Group("/api", h.requireAuth())
	{
		protected.GET("/task/", h.listTasks)
		protected.POST("/task/", h.createTask)
		protected.GET("/task/:id/", h.getTask)
		protected.PUT("/task/:id/", h.replaceTask)
		protected.PATCH("/task/:id/", h.patchTask)
		protected.DELETE("/task/:id/", h.deleteTask)

		protected.GET("/comment/", h.listComments)
		protected.POST("/comment/", h.createComment)
		protected.GET("/comment/:id/", h.getComment)
		protected.PUT("/comment/:id/", h.replaceComment)
		protected.PATCH("/comment/:id/", h.patchComment)
		protected.DELETE("/comment/:id/", h.deleteComment)

		protected.GET("/users/", h.listUsers)
		protected.POST("/users/", h.createUser)
		protected.GET("/users/:id/", h.getUser)
		protected.PUT("/users/:id/", h.replaceUser)
		protected.PATCH("/users/:id/", h.patchUser)
		protected.DELETE("/users/:id/", h.deleteUser)

		protected.GET("/groups/", h.listGroups)
		protected.POST("/groups/", h.createGroup)
		protected.GET("/groups/:id/", h.getGroup)
		protected.PUT("/groups/:id/", h.replaceGroup)
		protected.PATCH("/groups/:id/", h.replaceGroup)
		protected.DELETE("/groups/:id/", h.deleteGroup)
	}

	return r, nil
}

func (h *handlers) noRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, detail(detailNotFound))
}

// noMethod answers a known path with an unsupported method. Credentials are
// checked first so an anonymous caller always sees 403.
func (h *handlers) noMethod(c *gin.Context) {
	if _, public := publicPaths[c.Request.URL.Path]; public {
		c.JSON(http.StatusMethodNotAllowed, detail(fmt.Sprintf("Method %q not allowed.", c.Request.Method)))
		return
	}
	if _, err := h.auth.Authenticate(c.Request.Context(), c.Request); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusMethodNotAllowed, detail(fmt.Sprintf("Method %q not allowed.", c.Request.Method)))
}

func (h *handlers) recovered(c *gin.Context, rec any) {
	h.respondErr(c, fmt.Errorf("panic: %v", rec))
	c.Abort()
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"metrics": h.metrics.GetSnapshot(),
	})
}

// pathID parses the :id segment. A malformed id matches no resource.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, detail(detailNotFound))
		return 0, false
	}
	return id, true
}

// payload reads and parses the request body.
func payload(c *gin.Context) (serializers.Payload, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return serializers.ParsePayload(body)
}

// baseURL is the scheme and host the request was addressed to.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
