package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	commentColumns = `comment_id, article_id, author, body, votes, created_at`

	listCommentsQuery = `SELECT ` + commentColumns + ` FROM comments WHERE article_id = $1 ORDER BY created_at DESC`

	// Inserts nothing when the article is missing.
	insertCommentQuery = `
INSERT INTO comments (author, body, article_id)
SELECT $1, $2, article_id FROM articles WHERE article_id = $3
RETURNING ` + commentColumns

	updateCommentVotesQuery = `UPDATE comments SET votes = votes + $1 WHERE comment_id = $2 RETURNING ` + commentColumns

	deleteCommentQuery = `DELETE FROM comments WHERE comment_id = $1`
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListComments returns an article's comments, newest first. The caller checks
// the article exists; an empty result is not an error.
func (r *CommentRepository) ListComments(ctx context.Context, articleID int) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx, listCommentsQuery, articleID)
	if err != nil {
		return nil, fmt.Errorf("querying comments for article %d: %w", articleID, err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		return nil, fmt.Errorf("collecting comments for article %d: %w", articleID, err)
	}
	return comments, nil
}

// InsertComment adds a comment to an existing article. A missing article
// gives 404 "id not found"; an unknown author is a foreign key violation.
func (r *CommentRepository) InsertComment(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error) {
	return r.collectComment(ctx, insertCommentQuery, req.Username, req.Body, req.ArticleID)
}

// UpdateCommentVotes adds incVotes to the comment's votes in one statement.
func (r *CommentRepository) UpdateCommentVotes(ctx context.Context, commentID, incVotes int) (*model.Comment, error) {
	return r.collectComment(ctx, updateCommentVotesQuery, incVotes, commentID)
}

func (r *CommentRepository) DeleteComment(ctx context.Context, commentID int) error {
	tag, err := r.db.Exec(ctx, deleteCommentQuery, commentID)
	if err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.IDNotFound()
	}
	return nil
}

func (r *CommentRepository) collectComment(ctx context.Context, query string, args ...any) (*model.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comment: %w", err)
	}

	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.IDNotFound()
		}
		return nil, fmt.Errorf("collecting comment: %w", err)
	}
	return &comment, nil
}
