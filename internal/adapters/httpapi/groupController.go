package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GroupController is read-only; groups are managed from the CLI.
type GroupController struct{ gc GroupUseCase }

func NewGroupController(gc GroupUseCase) *GroupController { return &GroupController{gc: gc} }

func (ctl *GroupController) ListGroups(c *gin.Context) {
	w, paged := window(c)
	groups, count, err := ctl.gc.ListGroups(c.Request.Context(), w)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, w, paged, count, groups)
}

func (ctl *GroupController) GetGroup(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	g, err := ctl.gc.GetGroup(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
