package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/news-api/internal/validation"
)

// DefaultArticleImgURL is stored when an article is posted without an image.
const DefaultArticleImgURL = "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"

// Article is a full article row with its live comment count.
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Author        string    `json:"author" db:"author"`
	Body          string    `json:"body" db:"body"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// ArticleSummary is a listing row. The body is left out and CommentCount is
// filled in from a separate aggregation.
type ArticleSummary struct {
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	ArticleID     int       `json:"article_id" db:"article_id"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"-"`
}

// ArticleSortColumn is a column articles may be ordered by. Only values from
// the allow-list below ever reach SQL text.
type ArticleSortColumn string

const (
	SortByArticleID     ArticleSortColumn = "article_id"
	SortByTitle         ArticleSortColumn = "title"
	SortByTopic         ArticleSortColumn = "topic"
	SortByAuthor        ArticleSortColumn = "author"
	SortByBody          ArticleSortColumn = "body"
	SortByCreatedAt     ArticleSortColumn = "created_at"
	SortByVotes         ArticleSortColumn = "votes"
	SortByArticleImgURL ArticleSortColumn = "article_img_url"
)

var articleSortColumns = map[string]ArticleSortColumn{
	string(SortByArticleID):     SortByArticleID,
	string(SortByTitle):         SortByTitle,
	string(SortByTopic):         SortByTopic,
	string(SortByAuthor):        SortByAuthor,
	string(SortByBody):          SortByBody,
	string(SortByCreatedAt):     SortByCreatedAt,
	string(SortByVotes):         SortByVotes,
	string(SortByArticleImgURL): SortByArticleImgURL,
}

// ParseArticleSortColumn maps a sort_by value onto the allow-list.
// Empty input selects created_at.
func ParseArticleSortColumn(s string) (ArticleSortColumn, error) {
	if s == "" {
		return SortByCreatedAt, nil
	}
	col, ok := articleSortColumns[s]
	if !ok {
		return "", fmt.Errorf("invalid sort column %q", s)
	}
	return col, nil
}

// SortOrder is ASC or DESC.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case. Empty input selects DESC.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(s) {
	case "":
		return SortDesc, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q", s)
	}
}

// ArticleFilter is a parsed, allow-listed listing query.
type ArticleFilter struct {
	SortBy ArticleSortColumn
	Order  SortOrder
	Topic  string
}

type GetArticleRequest struct {
	ArticleID int `param:"article_id" json:"-" validate:"int4"`
}

func (r *GetArticleRequest) Validate() error {
	return validate.Struct(r)
}

type ListArticlesRequest struct {
	SortBy string `query:"sort_by" json:"-"`
	Order  string `query:"order" json:"-"`
	Topic  string `query:"topic" json:"-"`
}

// Filter parses the raw query values.
func (r *ListArticlesRequest) Filter() (ArticleFilter, error) {
	sortBy, err := ParseArticleSortColumn(r.SortBy)
	if err != nil {
		return ArticleFilter{}, err
	}
	order, err := ParseSortOrder(r.Order)
	if err != nil {
		return ArticleFilter{}, err
	}
	return ArticleFilter{SortBy: sortBy, Order: order, Topic: r.Topic}, nil
}

func (r *ListArticlesRequest) Validate() error {
	var errs validation.CustomValidationErrors

	if _, err := ParseArticleSortColumn(r.SortBy); err != nil {
		errs = append(errs, validation.CustomValidationError{
			Field:   "sort_by",
			Message: "must be one of: article_id title topic author body created_at votes article_img_url",
		})
	}
	if _, err := ParseSortOrder(r.Order); err != nil {
		errs = append(errs, validation.CustomValidationError{
			Field:   "order",
			Message: "must be one of: ASC DESC",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PostArticleRequest struct {
	Author        string `json:"author" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Body          string `json:"body" validate:"required"`
	Topic         string `json:"topic" validate:"required"`
	ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
}

func (r *PostArticleRequest) Validate() error {
	return validate.Struct(r)
}

// ImgURL returns the requested image or the stock default.
func (r *PostArticleRequest) ImgURL() string {
	if r.ArticleImgURL == "" {
		return DefaultArticleImgURL
	}
	return r.ArticleImgURL
}

type PatchArticleRequest struct {
	ArticleID int  `param:"article_id" json:"-" validate:"int4"`
	IncVotes  *int `json:"inc_votes" validate:"required,int4"`
}

func (r *PatchArticleRequest) Validate() error {
	return validate.Struct(r)
}
