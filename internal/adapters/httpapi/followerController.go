package httpapi

import (
	"net/http"
	"strings"

	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

// FollowUser takes {"following": "<username>"}. Self and duplicate follows
// are rejected with 400.
func (ctl *FollowerController) FollowUser(c *gin.Context) {
	var req struct {
		Following string `json:"following"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	f, err := ctl.fc.FollowUser(c.Request.Context(), middleware.UserID(c), req.Following)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ListFollowing lists the caller's own follow edges, filtered by ?search=.
func (ctl *FollowerController) ListFollowing(c *gin.Context) {
	w, paged := window(c)
	search := strings.TrimSpace(c.Query("search"))

	follows, count, err := ctl.fc.ListFollowing(c.Request.Context(), middleware.UserID(c), search, w)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, w, paged, count, follows)
}
