package handler

import (
	"context"

	"github.com/deppfellow/news-api/internal/model"
)

// The handlers depend on these narrow views of the service layer.

type TopicService interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
}

type ArticleService interface {
	GetArticle(ctx context.Context, articleID int) (*model.Article, error)
	ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error)
	CreateArticle(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error)
	UpdateVotes(ctx context.Context, articleID, incVotes int) (*model.Article, error)
}

type CommentService interface {
	ListComments(ctx context.Context, articleID int) ([]model.Comment, error)
	CreateComment(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error)
	UpdateVotes(ctx context.Context, commentID, incVotes int) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
}

type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
}

type EndpointService interface {
	ListEndpoints() []model.EndpointDoc
}
