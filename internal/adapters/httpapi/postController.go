package httpapi

import (
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) ListPosts(c *gin.Context) {
	w, paged := window(c)
	posts, count, err := ctl.pc.ListPosts(c.Request.Context(), w)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, w, paged, count, posts)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	in, err := bindPostInput(c, false)
	defer closeUpload(in)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	res, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdatePost is PUT: text is required.
func (ctl *PostController) UpdatePost(c *gin.Context) {
	ctl.update(c, true)
}

// PartialUpdatePost is PATCH: only the fields sent change.
func (ctl *PostController) PartialUpdatePost(c *gin.Context) {
	ctl.update(c, false)
}

func (ctl *PostController) update(c *gin.Context, full bool) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	userID := middleware.UserID(c)
	// ownership is checked before the body is validated
	if _, err := ctl.pc.GetEditablePost(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	in, err := bindPostInput(c, full)
	defer closeUpload(in)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.pc.UpdatePost(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
