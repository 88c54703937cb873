package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/news-api/internal/config"
	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/handler"
	"github.com/deppfellow/news-api/internal/metrics"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTopicService is a mock implementation of handler.TopicService
type MockTopicService struct {
	ListTopicsFunc func(ctx context.Context) ([]model.Topic, error)
}

func (m *MockTopicService) ListTopics(ctx context.Context) ([]model.Topic, error) {
	if m.ListTopicsFunc != nil {
		return m.ListTopicsFunc(ctx)
	}
	return []model.Topic{}, nil
}

// MockArticleService is a mock implementation of handler.ArticleService
type MockArticleService struct {
	GetArticleFunc    func(ctx context.Context, articleID int) (*model.Article, error)
	ListArticlesFunc  func(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error)
	CreateArticleFunc func(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error)
	UpdateVotesFunc   func(ctx context.Context, articleID, incVotes int) (*model.Article, error)
}

func (m *MockArticleService) GetArticle(ctx context.Context, articleID int) (*model.Article, error) {
	if m.GetArticleFunc != nil {
		return m.GetArticleFunc(ctx, articleID)
	}
	return nil, errs.IDNotFound()
}

func (m *MockArticleService) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error) {
	if m.ListArticlesFunc != nil {
		return m.ListArticlesFunc(ctx, filter)
	}
	return []model.ArticleSummary{}, nil
}

func (m *MockArticleService) CreateArticle(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error) {
	if m.CreateArticleFunc != nil {
		return m.CreateArticleFunc(ctx, req)
	}
	return nil, errs.NewInternalServerError()
}

func (m *MockArticleService) UpdateVotes(ctx context.Context, articleID, incVotes int) (*model.Article, error) {
	if m.UpdateVotesFunc != nil {
		return m.UpdateVotesFunc(ctx, articleID, incVotes)
	}
	return nil, errs.IDNotFound()
}

// MockCommentService is a mock implementation of handler.CommentService
type MockCommentService struct {
	ListCommentsFunc  func(ctx context.Context, articleID int) ([]model.Comment, error)
	CreateCommentFunc func(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error)
	UpdateVotesFunc   func(ctx context.Context, commentID, incVotes int) (*model.Comment, error)
	DeleteCommentFunc func(ctx context.Context, commentID int) error
}

func (m *MockCommentService) ListComments(ctx context.Context, articleID int) ([]model.Comment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, articleID)
	}
	return []model.Comment{}, nil
}

func (m *MockCommentService) CreateComment(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, req)
	}
	return nil, errs.NewInternalServerError()
}

func (m *MockCommentService) UpdateVotes(ctx context.Context, commentID, incVotes int) (*model.Comment, error) {
	if m.UpdateVotesFunc != nil {
		return m.UpdateVotesFunc(ctx, commentID, incVotes)
	}
	return nil, errs.IDNotFound()
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID int) error {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, commentID)
	}
	return nil
}

// MockUserService is a mock implementation of handler.UserService
type MockUserService struct {
	ListUsersFunc func(ctx context.Context) ([]model.User, error)
	GetUserFunc   func(ctx context.Context, username string) (*model.User, error)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []model.User{}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, username)
	}
	return nil, errs.UsernameNotFound()
}

type staticEndpoints []model.EndpointDoc

func (s staticEndpoints) ListEndpoints() []model.EndpointDoc {
	return s
}

type mocks struct {
	topics   *MockTopicService
	articles *MockArticleService
	comments *MockCommentService
	users    *MockUserService
}

func setupRouter(t *testing.T) (*echo.Echo, *mocks, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{Port: "9090", CORSAllowedOrigins: []string{"*"}},
			Observability: &config.ObservabilityConfig{
				HealthChecks: config.HealthChecksConfig{Enabled: false, Timeout: 5 * time.Second},
			},
		},
		Logger:  &logger,
		Metrics: metrics.NewWithRegistry(prometheus.NewRegistry(), &logger),
	}

	m := &mocks{
		topics:   &MockTopicService{},
		articles: &MockArticleService{},
		comments: &MockCommentService{},
		users:    &MockUserService{},
	}

	h := &handler.Handlers{
		Health:   handler.NewHealthHandler(s),
		Metrics:  handler.NewMetricsHandler(s),
		Endpoint: handler.NewEndpointHandler(s, staticEndpoints{{Endpoint: "GET /api", Description: "d", Queries: "No queries found", ExampleResponse: "no example response found"}}),
		Topic:    handler.NewTopicHandler(s, m.topics),
		Article:  handler.NewArticleHandler(s, m.articles),
		Comment:  handler.NewCommentHandler(s, m.comments),
		User:     handler.NewUserHandler(s, m.users),
	}

	return NewRouter(s, h), m, &logs
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestCollectionRoutes(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.topics.ListTopicsFunc = func(ctx context.Context) ([]model.Topic, error) {
		return []model.Topic{{Slug: "mitch", Description: "The man, the Mitch, the legend"}}, nil
	}
	m.users.ListUsersFunc = func(ctx context.Context) ([]model.User, error) {
		return []model.User{{Username: "butter_bridge", Name: "jonny"}}, nil
	}

	tests := []struct {
		target string
		key    string
	}{
		{"/api/topics", "topics"},
		{"/api/users", "users"},
		{"/api/articles", "articles"},
		{"/api", "endPoints"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(e, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.IsType(t, []any{}, decode(t, rec)[tt.key])
		})
	}
}

func TestGetArticle(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.articles.GetArticleFunc = func(ctx context.Context, id int) (*model.Article, error) {
		if id == 1 {
			return &model.Article{ArticleID: 1, Author: "butter_bridge", Votes: 100, CommentCount: 11}, nil
		}
		return nil, errs.IDNotFound()
	}

	rec := do(e, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	article := decode(t, rec)["article"].([]any)
	require.Len(t, article, 1)
	first := article[0].(map[string]any)
	assert.Equal(t, float64(100), first["votes"])
	assert.Equal(t, float64(11), first["comment_count"])

	rec = do(e, http.MethodGet, "/api/articles/500", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "id not found", decode(t, rec)["msg"])

	rec = do(e, http.MethodGet, "/api/articles/dog", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad request", decode(t, rec)["msg"])
}

func TestListArticlesQueries(t *testing.T) {
	e, m, _ := setupRouter(t)

	var got model.ArticleFilter
	m.articles.ListArticlesFunc = func(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error) {
		got = filter
		if filter.Topic == "dogs" {
			return nil, errs.BadRequest()
		}
		return []model.ArticleSummary{}, nil
	}

	rec := do(e, http.MethodGet, "/api/articles?sort_by=title&order=ASC&topic=cats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ArticleFilter{SortBy: model.SortByTitle, Order: model.SortAsc, Topic: "cats"}, got)

	rec = do(e, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ArticleFilter{SortBy: model.SortByCreatedAt, Order: model.SortDesc}, got)

	for _, target := range []string{
		"/api/articles?sort_by=dog",
		"/api/articles?order=sideways",
		"/api/articles?topic=dogs",
	} {
		rec := do(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "bad request", decode(t, rec)["msg"], target)
	}
}

func TestPostArticle(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.articles.CreateArticleFunc = func(ctx context.Context, req *model.PostArticleRequest) (*model.Article, error) {
		if req.Topic == "dogs" {
			return nil, &pgconn.PgError{Code: "23503", TableName: "articles", ConstraintName: "articles_topic_fkey"}
		}
		return &model.Article{ArticleID: 14, Title: req.Title, Topic: req.Topic, Author: req.Author, ArticleImgURL: req.ImgURL()}, nil
	}

	rec := do(e, http.MethodPost, "/api/articles", `{"author":"lurker","title":"Cats","body":"b","topic":"cats"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	article := decode(t, rec)["article"].([]any)[0].(map[string]any)
	assert.Equal(t, model.DefaultArticleImgURL, article["article_img_url"])
	assert.Equal(t, float64(0), article["comment_count"])

	rec = do(e, http.MethodPost, "/api/articles", `{"author":"lurker","title":"Dogs","body":"b","topic":"dogs"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "topic not found", decode(t, rec)["msg"])

	rec = do(e, http.MethodPost, "/api/articles", `{"author":"lurker"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchArticleVotes(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.articles.UpdateVotesFunc = func(ctx context.Context, id, inc int) (*model.Article, error) {
		if id != 1 {
			return nil, errs.IDNotFound()
		}
		return &model.Article{ArticleID: 1, Votes: 100 + inc}, nil
	}

	rec := do(e, http.MethodPatch, "/api/articles/1", `{"inc_votes": -101}`)
	require.Equal(t, http.StatusOK, rec.Code)
	article := decode(t, rec)["article"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(-1), article["votes"])

	rec = do(e, http.MethodPatch, "/api/articles/999", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, body := range []string{`{"inc_votes": "cat"}`, `{}`, `{"inc_votes": 1.5}`} {
		rec := do(e, http.MethodPatch, "/api/articles/1", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "bad request", decode(t, rec)["msg"], body)
	}

	rec = do(e, http.MethodPatch, "/api/articles/dog", `{"inc_votes": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticleComments(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.comments.ListCommentsFunc = func(ctx context.Context, id int) ([]model.Comment, error) {
		switch id {
		case 1:
			return []model.Comment{{CommentID: 5, ArticleID: 1}, {CommentID: 2, ArticleID: 1}}, nil
		case 2:
			return []model.Comment{}, nil
		default:
			return nil, errs.IDNotFound()
		}
	}
	m.comments.CreateCommentFunc = func(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error) {
		if req.Username == "nobody" {
			return nil, &pgconn.PgError{Code: "23503", Detail: `Key (author)=(nobody) is not present in table "users".`}
		}
		return &model.Comment{CommentID: 19, ArticleID: req.ArticleID, Author: req.Username, Body: req.Body}, nil
	}

	rec := do(e, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["comments"], 2)

	rec = do(e, http.MethodGet, "/api/articles/2/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comments":[]}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/articles/999/comments", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/api/articles/2/comments", `{"username":"lurker","body":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decode(t, rec)["comments"].([]any)[0].(map[string]any)
	assert.Equal(t, "lurker", comment["author"])
	assert.Equal(t, float64(2), comment["article_id"])

	rec = do(e, http.MethodPost, "/api/articles/2/comments", `{"username":"nobody","body":"hello"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "username not found", decode(t, rec)["msg"])

	rec = do(e, http.MethodPost, "/api/articles/2/comments", `{"username":"lurker"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentRoutes(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.comments.UpdateVotesFunc = func(ctx context.Context, id, inc int) (*model.Comment, error) {
		return &model.Comment{CommentID: id, Votes: 16 + inc}, nil
	}
	m.comments.DeleteCommentFunc = func(ctx context.Context, id int) error {
		if id != 1 {
			return errs.IDNotFound()
		}
		return nil
	}

	rec := do(e, http.MethodPatch, "/api/comments/1", `{"inc_votes": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	comment := decode(t, rec)["comment"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(17), comment["votes"])

	rec = do(e, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(e, http.MethodDelete, "/api/comments/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "id not found", decode(t, rec)["msg"])

	rec = do(e, http.MethodDelete, "/api/comments/dog", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser(t *testing.T) {
	e, m, _ := setupRouter(t)
	m.users.GetUserFunc = func(ctx context.Context, username string) (*model.User, error) {
		if username == "butter_bridge" {
			return &model.User{Username: username, Name: "jonny"}, nil
		}
		return nil, errs.UsernameNotFound()
	}

	rec := do(e, http.MethodGet, "/api/users/butter_bridge", "")
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].([]any)[0].(map[string]any)
	assert.Equal(t, "jonny", user["name"])

	rec = do(e, http.MethodGet, "/api/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "username not found", decode(t, rec)["msg"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	e, _, _ := setupRouter(t)

	rec := do(e, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decode(t, rec)["msg"])

	rec = do(e, http.MethodPut, "/api/topics", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnexpectedErrorIsLoggedAndHidden(t *testing.T) {
	e, m, logs := setupRouter(t)
	m.topics.ListTopicsFunc = func(ctx context.Context) ([]model.Topic, error) {
		return nil, &pgconn.PgError{Code: "53300", Message: "too many connections"}
	}

	rec := do(e, http.MethodGet, "/api/topics", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode(t, rec)["msg"])
	assert.Contains(t, logs.String(), "too many connections")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStatusWithChecksDisabled(t *testing.T) {
	e, _, _ := setupRouter(t)

	rec := do(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestBodyCannotOverridePathID(t *testing.T) {
	e, m, _ := setupRouter(t)

	var got []int
	m.comments.CreateCommentFunc = func(ctx context.Context, req *model.PostCommentRequest) (*model.Comment, error) {
		got = append(got, req.ArticleID)
		return &model.Comment{CommentID: 19, ArticleID: req.ArticleID}, nil
	}
	m.comments.UpdateVotesFunc = func(ctx context.Context, id, inc int) (*model.Comment, error) {
		got = append(got, id)
		return &model.Comment{CommentID: id}, nil
	}
	m.comments.DeleteCommentFunc = func(ctx context.Context, id int) error {
		got = append(got, id)
		return nil
	}
	m.articles.UpdateVotesFunc = func(ctx context.Context, id, inc int) (*model.Article, error) {
		got = append(got, id)
		return &model.Article{ArticleID: id}, nil
	}

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodPost, "/api/articles/1/comments", `{"username":"lurker","body":"hi","ArticleID":7}`, http.StatusCreated},
		{http.MethodPatch, "/api/comments/1", `{"inc_votes":1,"commentId":8}`, http.StatusOK},
		{http.MethodDelete, "/api/comments/1", `{"commentid":9}`, http.StatusNoContent},
		{http.MethodPatch, "/api/articles/1", `{"inc_votes":1,"articleId":3}`, http.StatusOK},
	}

	for _, tt := range tests {
		rec := do(e, tt.method, tt.target, tt.body)
		require.Equal(t, tt.status, rec.Code, rec.Body.String())
	}

	assert.Equal(t, []int{1, 1, 1, 1}, got)
}

func TestBodyCannotOverrideListingQuery(t *testing.T) {
	e, m, _ := setupRouter(t)

	var got model.ArticleFilter
	m.articles.ListArticlesFunc = func(ctx context.Context, filter model.ArticleFilter) ([]model.ArticleSummary, error) {
		got = filter
		return []model.ArticleSummary{}, nil
	}

	rec := do(e, http.MethodGet, "/api/articles?topic=cats", `{"Topic":"paper","SortBy":"title"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "cats", got.Topic)
	assert.Equal(t, model.SortByCreatedAt, got.SortBy)
}
