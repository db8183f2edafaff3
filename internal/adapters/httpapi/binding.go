package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/core/apperr"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
)

var errInvalidInput = apperr.Invalid("", "invalid input")

// nullableID tells an absent JSON key from an explicit null.
type nullableID struct {
	Set bool
	ID  *uint
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(b, &id); err != nil {
		return apperr.Invalid("group", "incorrect type, expected pk value")
	}
	n.ID = &id
	return nil
}

type postRequest struct {
	Text  *string    `json:"text"`
	Group nullableID `json:"group"`
}

// bindPostInput accepts JSON or a multipart/urlencoded form with an optional
// "image" file part. Full updates require text.
func bindPostInput(c *gin.Context, requireText bool) (postPort.PostInput, error) {
	var in postPort.PostInput

	if isForm(c) {
		if text, ok := c.GetPostForm("text"); ok {
			in.Text = &text
		}
		if raw, ok := c.GetPostForm("group"); ok {
			id, err := parseGroup(raw)
			if err != nil {
				return in, err
			}
			in.GroupID = id
			in.SetGroup = true
		}
		upload, err := formImage(c)
		if err != nil {
			return in, err
		}
		in.Image = upload
	} else {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var ve *apperr.ValidationError
			if errors.As(err, &ve) {
				return in, ve
			}
			return in, errInvalidInput
		}
		in.Text = req.Text
		in.GroupID = req.Group.ID
		in.SetGroup = req.Group.Set
	}

	if requireText && in.Text == nil {
		return in, apperr.Invalid("text", "this field is required")
	}
	return in, nil
}

func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == gin.MIMEMultipartPOSTForm || ct == gin.MIMEPOSTForm
}

// parseGroup reads a form group value; empty means no group.
func parseGroup(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperr.Invalid("group", "incorrect type, expected pk value")
	}
	g := uint(id)
	return &g, nil
}

func formImage(c *gin.Context) (*postPort.Upload, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Invalid("image", "could not read the uploaded file")
	}
	if fh.Filename == "" {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Invalid("image", "could not read the uploaded file")
	}
	return &postPort.Upload{Filename: fh.Filename, Content: f}, nil
}

// closeUpload releases the file opened by bindPostInput.
func closeUpload(in postPort.PostInput) {
	if in.Image == nil {
		return
	}
	if cl, ok := in.Image.Content.(io.Closer); ok {
		_ = cl.Close()
	}
}

type textRequest struct {
	Text *string `json:"text"`
}
