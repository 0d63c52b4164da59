package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	taskservice "github.com/thenoetrevino/tasktracker/internal/services/task"
)

// listTasks serves GET /api/task/ with search and exact filters.
func (h *handlers) listTasks(c *gin.Context) {
	filter := h.filters.Parse(c.Request.URL.Query())
	tasks, err := h.app.TaskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tasks.RepresentList(tasks))
}

// createTask serves POST /api/task/. Every field error is reported at once.
func (h *handlers) createTask(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.tasks.Validate(ctx, p, false)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	task, err := h.app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:        *in.Title,
		ProjectID:    in.Project.ID,
		StatusID:     in.Status.ID,
		AssigneeID:   in.Assignee.ID,
		ReporterID:   in.Reporter.ID,
		Descriptions: in.Descriptions,
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.tasks.Represent(task))
}

func (h *handlers) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.app.TaskService.GetTask(c.Request.Context(), id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tasks.Represent(task))
}

func (h *handlers) replaceTask(c *gin.Context) { h.updateTask(c, false) }

func (h *handlers) patchTask(c *gin.Context) { h.updateTask(c, true) }

// updateTask validates every submitted field but applies only status and
// assignee.
func (h *handlers) updateTask(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.app.TaskService.GetTask(ctx, id); err != nil {
		h.respondErr(c, err)
		return
	}

	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.tasks.Validate(ctx, p, partial)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	req := taskservice.UpdateTaskRequest{TaskID: id}
	if in.Status != nil {
		req.StatusID = &in.Status.ID
	}
	if in.Assignee != nil {
		req.AssigneeID = &in.Assignee.ID
	}
	task, err := h.app.TaskService.UpdateTask(ctx, req)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.tasks.Represent(task))
}

// deleteTask removes the task with its descriptions and comments.
func (h *handlers) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.app.TaskService.DeleteTask(c.Request.Context(), id); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

