package httpapi

import (
	"net/http"
	"strconv"

	"yatube/internal/core/pagination"

	"github.com/gin-gonic/gin"
)

type pageResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// window reads limit/offset. paged is false when no limit was given.
func window(c *gin.Context) (w pagination.Window, paged bool) {
	return pagination.ParseWindow(c.Query("limit"), c.Query("offset"))
}

// respondList writes results as a plain array, or as a limit/offset
// envelope with absolute next/previous links when paged.
func respondList(c *gin.Context, w pagination.Window, paged bool, count int64, results any) {
	if !paged {
		c.JSON(http.StatusOK, results)
		return
	}

	resp := pageResponse{Count: count, Results: results}
	if w.HasNext(count) {
		next := pageURL(c, w.Next())
		resp.Next = &next
	}
	if w.HasPrevious() {
		prev := pageURL(c, w.Previous())
		resp.Previous = &prev
	}
	c.JSON(http.StatusOK, resp)
}

func pageURL(c *gin.Context, w pagination.Window) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(w.Limit))
	if w.Offset > 0 {
		q.Set("offset", strconv.Itoa(w.Offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + u.RequestURI()
}
