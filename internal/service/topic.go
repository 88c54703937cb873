package service

import (
	"context"

	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/repository"
)

type TopicService struct {
	topics *repository.TopicRepository
}

func NewTopicService(topics *repository.TopicRepository) *TopicService {
	return &TopicService{topics: topics}
}

func (s *TopicService) ListTopics(ctx context.Context) ([]model.Topic, error) {
	return s.topics.ListTopics(ctx)
}
