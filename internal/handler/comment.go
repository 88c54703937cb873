package handler

import (
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	Handler
	comments CommentService
}

func NewCommentHandler(s *server.Server, comments CommentService) *CommentHandler {
	return &CommentHandler{
		Handler:  NewHandler(s),
		comments: comments,
	}
}

func (h *CommentHandler) ListComments(c echo.Context, req *model.GetCommentsRequest) (CommentsResponse, error) {
	comments, err := h.comments.ListComments(c.Request().Context(), req.ArticleID)
	if err != nil {
		return CommentsResponse{}, err
	}
	return CommentsResponse{Comments: comments}, nil
}

// PostComment answers under "comments", like the listing it adds to.
func (h *CommentHandler) PostComment(c echo.Context, req *model.PostCommentRequest) (CommentsResponse, error) {
	comment, err := h.comments.CreateComment(c.Request().Context(), req)
	if err != nil {
		return CommentsResponse{}, err
	}
	return CommentsResponse{Comments: []model.Comment{*comment}}, nil
}

func (h *CommentHandler) PatchComment(c echo.Context, req *model.PatchCommentRequest) (CommentResponse, error) {
	comment, err := h.comments.UpdateVotes(c.Request().Context(), req.CommentID, *req.IncVotes)
	if err != nil {
		return CommentResponse{}, err
	}
	return CommentResponse{Comment: []model.Comment{*comment}}, nil
}

func (h *CommentHandler) DeleteComment(c echo.Context, req *model.DeleteCommentRequest) error {
	return h.comments.DeleteComment(c.Request().Context(), req.CommentID)
}
