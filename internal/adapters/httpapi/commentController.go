package httpapi

import (
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

func (ctl *CommentController) ListComments(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	w, paged := window(c)
	comments, count, err := ctl.cc.ListComments(c.Request.Context(), postID, w)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, w, paged, count, comments)
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this field is required", "field": "text"})
		return
	}
	res, err := ctl.cc.CreateComment(c.Request.Context(), middleware.UserID(c), postID, *req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) GetComment(c *gin.Context) {
	postID, commentID, ok := commentParams(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	res, err := ctl.cc.GetComment(c.Request.Context(), postID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	ctl.update(c, true)
}

func (ctl *CommentController) PartialUpdateComment(c *gin.Context) {
	ctl.update(c, false)
}

func (ctl *CommentController) update(c *gin.Context, full bool) {
	postID, commentID, ok := commentParams(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if full && req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this field is required", "field": "text"})
		return
	}
	res, err := ctl.cc.UpdateComment(c.Request.Context(), middleware.UserID(c), postID, commentID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	postID, commentID, ok := commentParams(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err := ctl.cc.DeleteComment(c.Request.Context(), middleware.UserID(c), postID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func commentParams(c *gin.Context) (postID, commentID uint, ok bool) {
	postID, ok = idParam(c, "id")
	if !ok {
		return 0, 0, false
	}
	commentID, ok = idParam(c, "comment_id")
	return postID, commentID, ok
}
