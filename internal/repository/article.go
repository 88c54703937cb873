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
	getArticleQuery = `
SELECT
	a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.article_img_url,
	COUNT(c.comment_id)::INT AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id
WHERE a.article_id = $1
GROUP BY a.article_id`

	listArticlesQuery = `SELECT author, title, article_id, topic, created_at, votes, article_img_url FROM articles`

	countCommentsQuery = `SELECT article_id, COUNT(comment_id)::INT AS total FROM comments GROUP BY article_id`

	insertArticleQuery = `
INSERT INTO articles (author, title, body, topic, article_img_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url, 0 AS comment_count`

	updateArticleVotesQuery = `
WITH updated AS (
	UPDATE articles SET votes = votes + $1
	WHERE article_id = $2
	RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url
)
SELECT
	u.article_id, u.title, u.topic, u.author, u.body, u.created_at, u.votes, u.article_img_url,
	(SELECT COUNT(*)::INT FROM comments c WHERE c.article_id = u.article_id) AS comment_count
FROM updated u`
)

type ArticleRepository struct {
	db DBTX
}

func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// GetArticle returns one article with its comment count, or a 404 "id not
// found" when no such article exists.
func (r *ArticleRepository) GetArticle(ctx context.Context, articleID int) (*model.Article, error) {
	return r.collectArticle(ctx, getArticleQuery, articleID)
}

// ListArticles returns article summaries ordered by filter. CommentCount is
// left at zero; see CountComments.
func (r *ArticleRepository) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error) {
	query := listArticlesQuery
	var args []any

	if filter.Topic != "" {
		query += ` WHERE topic = $1`
		args = append(args, filter.Topic)
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, filter.SortBy, filter.Order)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}

	articles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ArticleSummary])
	if err != nil {
		return nil, fmt.Errorf("collecting articles: %w", err)
	}
	return articles, nil
}

// CountComments returns the number of comments per article id. Articles
// without comments are absent from the map.
func (r *ArticleRepository) CountComments(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.Query(ctx, countCommentsQuery)
	if err != nil {
		return nil, fmt.Errorf("counting comments: %w", err)
	}

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CommentCount])
	if err != nil {
		return nil, fmt.Errorf("collecting comment counts: %w", err)
	}

	byArticle := make(map[int]int, len(counts))
	for _, c := range counts {
		byArticle[c.ArticleID] = c.Total
	}
	return byArticle, nil
}

// InsertArticle stores a new article. An unknown topic or author surfaces as
// a foreign key violation from the driver.
func (r *ArticleRepository) InsertArticle(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error) {
	rows, err := r.db.Query(ctx, insertArticleQuery, req.Author, req.Title, req.Body, req.Topic, req.ImgURL())
	if err != nil {
		return nil, fmt.Errorf("inserting article: %w", err)
	}

	article, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, fmt.Errorf("inserting article: %w", err)
	}
	return &article, nil
}

// UpdateArticleVotes adds incVotes to the article's votes in one statement.
func (r *ArticleRepository) UpdateArticleVotes(ctx context.Context, articleID, incVotes int) (*model.Article, error) {
	return r.collectArticle(ctx, updateArticleVotesQuery, incVotes, articleID)
}

// ArticleExists reports whether an article with articleID exists.
func (r *ArticleRepository) ArticleExists(ctx context.Context, articleID int) (bool, error) {
	return exists(ctx, r.db, articleByID, articleID)
}

func (r *ArticleRepository) collectArticle(ctx context.Context, query string, args ...any) (*model.Article, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying article: %w", err)
	}

	article, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.IDNotFound()
		}
		return nil, fmt.Errorf("collecting article: %w", err)
	}
	return &article, nil
}
