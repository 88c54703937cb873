package handler

import "github.com/deppfellow/news-api/internal/model"

// Single resources are still served as one-element arrays under their key.

type TopicsResponse struct {
	Topics []model.Topic `json:"topics"`
}

type EndpointsResponse struct {
	EndPoints []model.EndpointDoc `json:"endPoints"`
}

type ArticleResponse struct {
	Article []model.Article `json:"article"`
}

type ArticlesResponse struct {
	Articles []model.ArticleSummary `json:"articles"`
}

type CommentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

type CommentResponse struct {
	Comment []model.Comment `json:"comment"`
}

type UsersResponse struct {
	Users []model.User `json:"users"`
}

type UserResponse struct {
	User []model.User `json:"user"`
}
