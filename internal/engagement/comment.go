package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is one entry in a recipe's ordered comment sequence.
type Comment struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

// AddComment appends a new comment to the sequence and returns the updated
// sequence plus the created comment. The input slice is not modified.
func AddComment(comments []Comment, authorID uuid.UUID, text string) ([]Comment, Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, Comment{}, ErrEmptyText
	}

	comment := Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	updated := make([]Comment, 0, len(comments)+1)
	updated = append(updated, comments...)
	updated = append(updated, comment)
	return updated, comment, nil
}

// EditComment replaces the text of the identified comment. Only the comment's
// author may edit it; every other field and the sequence order are preserved.
func EditComment(comments []Comment, commentID, requesterID uuid.UUID, newText string) ([]Comment, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, ErrEmptyText
	}

	idx := indexOf(comments, commentID)
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if comments[idx].AuthorID != requesterID {
		return nil, ErrNotCommentAuthor
	}

	updated := make([]Comment, len(comments))
	copy(updated, comments)
	updated[idx].Text = newText
	return updated, nil
}

// DeleteComment removes the identified comment, keeping the relative order of
// the remaining comments. Only the comment's author may delete it.
func DeleteComment(comments []Comment, commentID, requesterID uuid.UUID) ([]Comment, error) {
	idx := indexOf(comments, commentID)
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if comments[idx].AuthorID != requesterID {
		return nil, ErrNotCommentAuthor
	}

	updated := make([]Comment, 0, len(comments)-1)
	updated = append(updated, comments[:idx]...)
	updated = append(updated, comments[idx+1:]...)
	return updated, nil
}

func indexOf(comments []Comment, id uuid.UUID) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}
