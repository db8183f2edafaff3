package feed

import (
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

type GroupPage struct {
	Group *groupPort.GroupDTO
	*postPort.PageDTO
}

// ProfilePage is an author's listing. Following is false for anonymous viewers.
type ProfilePage struct {
	Author    *userPort.UserDTO
	PostCount int64
	Following bool
	*postPort.PageDTO
}

type PostDetail struct {
	Post        *postPort.PostDTO
	AuthorPosts int64
	Comments    []*commentPort.CommentDTO
}
