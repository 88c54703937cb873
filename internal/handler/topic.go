package handler

import (
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

type TopicHandler struct {
	Handler
	topics TopicService
}

func NewTopicHandler(s *server.Server, topics TopicService) *TopicHandler {
	return &TopicHandler{
		Handler: NewHandler(s),
		topics:  topics,
	}
}

func (h *TopicHandler) ListTopics(c echo.Context, _ *model.EmptyRequest) (TopicsResponse, error) {
	topics, err := h.topics.ListTopics(c.Request().Context())
	if err != nil {
		return TopicsResponse{}, err
	}
	return TopicsResponse{Topics: topics}, nil
}
