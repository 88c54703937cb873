package handler

import (
	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

type ArticleHandler struct {
	Handler
	articles ArticleService
}

func NewArticleHandler(s *server.Server, articles ArticleService) *ArticleHandler {
	return &ArticleHandler{
		Handler:  NewHandler(s),
		articles: articles,
	}
}

func (h *ArticleHandler) GetArticle(c echo.Context, req *model.GetArticleRequest) (ArticleResponse, error) {
	article, err := h.articles.GetArticle(c.Request().Context(), req.ArticleID)
	if err != nil {
		return ArticleResponse{}, err
	}
	return ArticleResponse{Article: []model.Article{*article}}, nil
}

func (h *ArticleHandler) ListArticles(c echo.Context, req *model.ListArticlesRequest) (ArticlesResponse, error) {
	filter, err := req.Filter()
	if err != nil {
		return ArticlesResponse{}, errs.BadRequest()
	}

	articles, err := h.articles.ListArticles(c.Request().Context(), filter)
	if err != nil {
		return ArticlesResponse{}, err
	}
	if articles == nil {
		articles = []model.ArticleSummary{}
	}
	return ArticlesResponse{Articles: articles}, nil
}

func (h *ArticleHandler) PostArticle(c echo.Context, req *model.PostArticleRequest) (ArticleResponse, error) {
	article, err := h.articles.CreateArticle(c.Request().Context(), req)
	if err != nil {
		return ArticleResponse{}, err
	}
	return ArticleResponse{Article: []model.Article{*article}}, nil
}

func (h *ArticleHandler) PatchArticle(c echo.Context, req *model.PatchArticleRequest) (ArticleResponse, error) {
	article, err := h.articles.UpdateVotes(c.Request().Context(), req.ArticleID, *req.IncVotes)
	if err != nil {
		return ArticleResponse{}, err
	}
	return ArticleResponse{Article: []model.Article{*article}}, nil
}
