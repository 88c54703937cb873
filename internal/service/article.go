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

type ArticleService struct {
	metrics  *metrics.Metrics
	articles *repository.ArticleRepository
	topics   *repository.TopicRepository
}

func NewArticleService(m *metrics.Metrics, articles *repository.ArticleRepository, topics *repository.TopicRepository) *ArticleService {
	return &ArticleService{
		metrics:  m,
		articles: articles,
		topics:   topics,
	}
}

func (s *ArticleService) GetArticle(ctx context.Context, articleID int) (*model.Article, error) {
	return s.articles.GetArticle(ctx, articleID)
}

// ListArticles lists articles matching filter with their comment counts.
//
// A topic that is not a known slug is rejected with 400 "bad request", even
// though it would otherwise just match nothing.
func (s *ArticleService) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error) {
	if filter.Topic != "" {
		known, err := s.topics.TopicExists(ctx, filter.Topic)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, errs.BadRequest()
		}
	}

	articles, err := s.articles.ListArticles(ctx, filter)
	if err != nil {
		return nil, err
	}

	counts, err := s.articles.CountComments(ctx)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].CommentCount = counts[articles[i].ArticleID]
	}

	return articles, nil
}

func (s *ArticleService) CreateArticle(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error) {
	article, err := s.articles.InsertArticle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating article by %q: %w", req.Author, err)
	}

	s.metrics.IncrementArticleCreated()
	zerolog.Ctx(ctx).Info().
		Int("article_id", article.ArticleID).
		Str("topic", article.Topic).
		Msg("article created")

	return article, nil
}

func (s *ArticleService) UpdateVotes(ctx context.Context, articleID, incVotes int) (*model.Article, error) {
	article, err := s.articles.UpdateArticleVotes(ctx, articleID, incVotes)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementVotesApplied(metrics.VoteTargetArticle)
	return article, nil
}
