package engagement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddCommentAppends(t *testing.T) {
	author := uuid.New()

	comments, first, err := AddComment(nil, author, "Looks delicious")
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, author, first.AuthorID)
	assert.Equal(t, "Looks delicious", first.Text)

	comments, second, err := AddComment(comments, author, "  trimmed  ")
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "trimmed", second.Text)
	// Newest last.
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	_, _, err := AddComment(nil, uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEditCommentOwnership(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()
	comments, comment, err := AddComment(nil, author, "original")
	assert.NoError(t, err)

	_, err = EditComment(comments, comment.ID, stranger, "hijacked")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := EditComment(comments, comment.ID, author, "revised")
	assert.NoError(t, err)
	assert.Equal(t, "revised", updated[0].Text)
	assert.Equal(t, comment.ID, updated[0].ID)
	assert.Equal(t, author, updated[0].AuthorID)
	// Input sequence untouched.
	assert.Equal(t, "original", comments[0].Text)
}

func TestEditCommentNotFound(t *testing.T) {
	author := uuid.New()
	comments, _, err := AddComment(nil, author, "hello")
	assert.NoError(t, err)

	_, err = EditComment(comments, uuid.New(), author, "nope")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestEditCommentRejectsEmptyText(t *testing.T) {
	author := uuid.New()
	comments, comment, err := AddComment(nil, author, "hello")
	assert.NoError(t, err)

	_, err = EditComment(comments, comment.ID, author, " ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestDeleteCommentPreservesOrder(t *testing.T) {
	author := uuid.New()
	comments, c1, _ := AddComment(nil, author, "first")
	comments, c2, _ := AddComment(comments, author, "second")
	comments, c3, _ := AddComment(comments, author, "third")

	updated, err := DeleteComment(comments, c2.ID, author)
	assert.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Equal(t, c1.ID, updated[0].ID)
	assert.Equal(t, c3.ID, updated[1].ID)
}

func TestDeleteCommentOwnership(t *testing.T) {
	author := uuid.New()
	comments, comment, _ := AddComment(nil, author, "mine")

	_, err := DeleteComment(comments, comment.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	_, err = DeleteComment(comments, uuid.New(), author)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
