package repository

import (
	"github.com/deppfellow/news-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Topics   *TopicRepository
	Articles *ArticleRepository
	Comments *CommentRepository
	Users    *UserRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool)
}

func newRepositories(db DBTX) *Repositories {
	return &Repositories{
		Topics:   NewTopicRepository(db),
		Articles: NewArticleRepository(db),
		Comments: NewCommentRepository(db),
		Users:    NewUserRepository(db),
	}
}
