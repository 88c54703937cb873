package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/metrics"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/repository"
	"github.com/rs/zerolog"
)

type CommentService struct {
	metrics  *metrics.Metrics
	articles *repository.ArticleRepository
	comments *repository.CommentRepository
}

func NewCommentService(m *metrics.Metrics, articles *repository.ArticleRepository, comments *repository.CommentRepository) *CommentService {
	return &CommentService{
		metrics:  m,
		articles: articles,
		comments: comments,
	}
}

// ListComments returns the comments of an existing article. An article with
// no comments yields an empty slice, a missing one 404 "id not found".
func (s *CommentService) ListComments(ctx context.Context, articleID int) ([]model.Comment, error) {
	found, err := s.articles.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.IDNotFound()
	}

	comments, err := s.comments.ListComments(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error) {
	comment, err := s.comments.InsertComment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("commenting on article %d: %w", req.ArticleID, err)
	}

	s.metrics.IncrementCommentCreated()
	zerolog.Ctx(ctx).Info().
		Int("comment_id", comment.CommentID).
		Int("article_id", comment.ArticleID).
		Msg("comment created")

	return comment, nil
}

func (s *CommentService) UpdateVotes(ctx context.Context, commentID, incVotes int) (*model.Comment, error) {
	comment, err := s.comments.UpdateCommentVotes(ctx, commentID, incVotes)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementVotesApplied(metrics.VoteTargetComment)
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID int) error {
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.metrics.IncrementCommentDeleted()
	zerolog.Ctx(ctx).Info().Int("comment_id", commentID).Msg("comment deleted")

	return nil
}
