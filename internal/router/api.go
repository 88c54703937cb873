package router

import (
	"net/http"

	"github.com/deppfellow/news-api/internal/handler"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("", handler.Handle(h.Endpoint.Handler, h.Endpoint.ListEndpoints, http.StatusOK, &model.EmptyRequest{}))

	api.GET("/topics", handler.Handle(h.Topic.Handler, h.Topic.ListTopics, http.StatusOK, &model.EmptyRequest{}))

	articles := api.Group("/articles")
	articles.GET("", handler.Handle(h.Article.Handler, h.Article.ListArticles, http.StatusOK, &model.ListArticlesRequest{}))
	articles.POST("", handler.Handle(h.Article.Handler, h.Article.PostArticle, http.StatusCreated, &model.PostArticleRequest{}))
	articles.GET("/:article_id", handler.Handle(h.Article.Handler, h.Article.GetArticle, http.StatusOK, &model.GetArticleRequest{}))
	articles.PATCH("/:article_id", handler.Handle(h.Article.Handler, h.Article.PatchArticle, http.StatusOK, &model.PatchArticleRequest{}))
	articles.GET("/:article_id/comments", handler.Handle(h.Comment.Handler, h.Comment.ListComments, http.StatusOK, &model.GetCommentsRequest{}))
	articles.POST("/:article_id/comments", handler.Handle(h.Comment.Handler, h.Comment.PostComment, http.StatusCreated, &model.PostCommentRequest{}))

	comments := api.Group("/comments")
	comments.PATCH("/:comment_id", handler.Handle(h.Comment.Handler, h.Comment.PatchComment, http.StatusOK, &model.PatchCommentRequest{}))
	comments.DELETE("/:comment_id", handler.HandleNoContent(h.Comment.Handler, h.Comment.DeleteComment, http.StatusNoContent, &model.DeleteCommentRequest{}))

	users := api.Group("/users")
	users.GET("", handler.Handle(h.User.Handler, h.User.ListUsers, http.StatusOK, &model.EmptyRequest{}))
	users.GET("/:username", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, &model.GetUserRequest{}))
}
