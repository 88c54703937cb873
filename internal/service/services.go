package service

import (
	"fmt"

	"github.com/deppfellow/news-api/internal/repository"
	"github.com/deppfellow/news-api/internal/server"
)

type Services struct {
	Topics    *TopicService
	Articles  *ArticleService
	Comments  *CommentService
	Users     *UserService
	Endpoints *EndpointService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	endpointService, err := NewEndpointService()
	if err != nil {
		return nil, fmt.Errorf("failed to load endpoint docs: %w", err)
	}

	return &Services{
		Topics:    NewTopicService(repos.Topics),
		Articles:  NewArticleService(s.Metrics, repos.Articles, repos.Topics),
		Comments:  NewCommentService(s.Metrics, repos.Articles, repos.Comments),
		Users:     NewUserService(repos.Users),
		Endpoints: endpointService,
	}, nil
}
