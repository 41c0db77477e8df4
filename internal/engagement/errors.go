package engagement

import "errors"

var (
	// ErrEmptyText is returned when a comment body is empty after trimming.
	ErrEmptyText = errors.New("comment text cannot be empty")
	// ErrCommentNotFound is returned when no comment with the given ID
	// exists in the snapshot being operated on.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotCommentAuthor is returned when a requester tries to edit or
	// delete a comment they do not own.
	ErrNotCommentAuthor = errors.New("only the comment author may modify it")
)
