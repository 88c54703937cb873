package model

import "time"

type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentCount is one row of the per-article comment aggregation.
type CommentCount struct {
	ArticleID int `db:"article_id"`
	Total     int `db:"total"`
}

type GetCommentsRequest struct {
	ArticleID int `param:"article_id" json:"-" validate:"int4"`
}

func (r *GetCommentsRequest) Validate() error {
	return validate.Struct(r)
}

type PostCommentRequest struct {
	ArticleID int    `param:"article_id" json:"-" validate:"int4"`
	Username  string `json:"username" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

func (r *PostCommentRequest) Validate() error {
	return validate.Struct(r)
}

type PatchCommentRequest struct {
	CommentID int  `param:"comment_id" json:"-" validate:"int4"`
	IncVotes  *int `json:"inc_votes" validate:"required,int4"`
}

func (r *PatchCommentRequest) Validate() error {
	return validate.Struct(r)
}

type DeleteCommentRequest struct {
	CommentID int `param:"comment_id" json:"-" validate:"int4"`
}

func (r *DeleteCommentRequest) Validate() error {
	return validate.Struct(r)
}
