package handler

import (
	"github.com/deppfellow/news-api/internal/server"
	"github.com/deppfellow/news-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health   *HealthHandler
	Metrics  *MetricsHandler
	Endpoint *EndpointHandler
	Topic    *TopicHandler
	Article  *ArticleHandler
	Comment  *CommentHandler
	User     *UserHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Metrics:  NewMetricsHandler(s),
		Endpoint: NewEndpointHandler(s, services.Endpoints),
		Topic:    NewTopicHandler(s, services.Topics),
		Article:  NewArticleHandler(s, services.Articles),
		Comment:  NewCommentHandler(s, services.Comments),
		User:     NewUserHandler(s, services.Users),
	}
}
