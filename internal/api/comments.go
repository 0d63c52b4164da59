package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentservice "github.com/thenoetrevino/tasktracker/internal/services/comment"
)

func (h *handlers) listComments(c *gin.Context) {
	comments, err := h.app.CommentService.ListComments(c.Request.Context())
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.comments.RepresentList(comments))
}

// createComment serves POST /api/comment/. The parent task's updated
// timestamp moves forward.
func (h *handlers) createComment(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.comments.Validate(ctx, p, false)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	req := commentservice.CreateCommentRequest{TaskID: in.Task.ID, AuthorID: in.Author.ID}
	if in.Text != nil {
		req.Text = *in.Text
	}
	comment, err := h.app.CommentService.CreateComment(ctx, req)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.comments.Represent(comment))
}

func (h *handlers) getComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comment, err := h.app.CommentService.GetComment(c.Request.Context(), id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.comments.Represent(comment))
}

func (h *handlers) replaceComment(c *gin.Context) { h.updateComment(c, false) }

func (h *handlers) patchComment(c *gin.Context) { h.updateComment(c, true) }

func (h *handlers) updateComment(c *gin.Context, partial bool) {
	ctx := c.Request.Context()
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.app.CommentService.GetComment(ctx, id); err != nil {
		h.respondErr(c, err)
		return
	}

	p, err := payload(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	in, err := h.comments.Validate(ctx, p, partial)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	req := commentservice.UpdateCommentRequest{ID: id, Text: in.Text}
	if in.Task != nil {
		req.TaskID = &in.Task.ID
	}
	if in.Author != nil {
		req.AuthorID = &in.Author.ID
	}
	comment, err := h.app.CommentService.UpdateComment(ctx, req)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.comments.Represent(comment))
}

func (h *handlers) deleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.app.CommentService.DeleteComment(c.Request.Context(), id); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
