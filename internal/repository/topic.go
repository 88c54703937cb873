package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/news-api/internal/model"
	"github.com/jackc/pgx/v5"
)

type TopicRepository struct {
	db DBTX
}

func NewTopicRepository(db DBTX) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, description FROM topics`)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}

	topics, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Topic])
	if err != nil {
		return nil, fmt.Errorf("collecting topics: %w", err)
	}
	return topics, nil
}

// TopicExists reports whether slug is a known topic.
func (r *TopicRepository) TopicExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, topicBySlug, slug)
}
