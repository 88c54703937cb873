package database

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/news-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Fixtures are embedded so the binary can seed any database without the
// source tree.
//
//go:embed data/*.json
var fixtureFS embed.FS

// Fixtures is the dataset loaded by Seed.
//
// Comments reference their article by title (belongs_to); article ids are
// only known after the articles are inserted.
type Fixtures struct {
	Topics   []seedTopic
	Users    []seedUser
	Articles []seedArticle
	Comments []seedComment
}

type seedTopic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type seedUser struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type seedArticle struct {
	Title         string `json:"title"`
	Topic         string `json:"topic"`
	Author        string `json:"author"`
	Body          string `json:"body"`
	CreatedAt     int64  `json:"created_at"`
	Votes         int    `json:"votes"`
	ArticleImgURL string `json:"article_img_url"`
}

type seedComment struct {
	Body      string `json:"body"`
	BelongsTo string `json:"belongs_to"`
	CreatedBy string `json:"created_by"`
	Votes     int    `json:"votes"`
	CreatedAt int64  `json:"created_at"`
}

// commentRow is a seedComment resolved against the inserted articles.
type commentRow struct {
	Body      string
	ArticleID int
	Author    string
	Votes     int
	CreatedAt time.Time
}

// LoadFixtures decodes the embedded dataset.
func LoadFixtures() (*Fixtures, error) {
	f := &Fixtures{}

	files := []struct {
		name string
		dest any
	}{
		{"data/topics.json", &f.Topics},
		{"data/users.json", &f.Users},
		{"data/articles.json", &f.Articles},
		{"data/comments.json", &f.Comments},
	}

	for _, file := range files {
		raw, err := fixtureFS.ReadFile(file.name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.name, err)
		}
		if err := json.Unmarshal(raw, file.dest); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", file.name, err)
		}
	}

	return f, nil
}

// Beginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Seed loads fixtures in one transaction. The tables must be empty, which
// Reset guarantees.
func Seed(ctx context.Context, db Beginner, fixtures *Fixtures, logger *zerolog.Logger) error {
	start := time.Now()

	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"topics"},
			[]string{"slug", "description"},
			pgx.CopyFromSlice(len(fixtures.Topics), func(i int) ([]any, error) {
				t := fixtures.Topics[i]
				return []any{t.Slug, t.Description}, nil
			}),
		); err != nil {
			return fmt.Errorf("copying topics: %w", err)
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"users"},
			[]string{"username", "name", "avatar_url"},
			pgx.CopyFromSlice(len(fixtures.Users), func(i int) ([]any, error) {
				u := fixtures.Users[i]
				return []any{u.Username, u.Name, u.AvatarURL}, nil
			}),
		); err != nil {
			return fmt.Errorf("copying users: %w", err)
		}

		inserted, err := insertArticles(ctx, tx, fixtures.Articles)
		if err != nil {
			return err
		}

		idLookup := createRef(inserted,
			func(a insertedArticle) string { return a.Title },
			func(a insertedArticle) int { return a.ArticleID },
		)

		comments, err := formatComments(fixtures.Comments, idLookup)
		if err != nil {
			return err
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"comments"},
			[]string{"body", "article_id", "author", "votes", "created_at"},
			pgx.CopyFromSlice(len(comments), func(i int) ([]any, error) {
				c := comments[i]
				return []any{c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt}, nil
			}),
		); err != nil {
			return fmt.Errorf("copying comments: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	logger.Info().
		Int("topics", len(fixtures.Topics)).
		Int("users", len(fixtures.Users)).
		Int("articles", len(fixtures.Articles)).
		Int("comments", len(fixtures.Comments)).
		Dur("duration", time.Since(start)).
		Msg("database seeded")

	return nil
}

type insertedArticle struct {
	ArticleID int
	Title     string
}

// insertArticles queues one INSERT per article in a single batch; the
// generated ids come back in queue order.
func insertArticles(ctx context.Context, tx pgx.Tx, articles []seedArticle) ([]insertedArticle, error) {
	batch := &pgx.Batch{}
	for _, a := range articles {
		imgURL := a.ArticleImgURL
		if imgURL == "" {
			imgURL = model.DefaultArticleImgURL
		}

		batch.Queue(`
			INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING article_id, title`,
			a.Title, a.Topic, a.Author, a.Body, convertTimestampToDate(a.CreatedAt), a.Votes, imgURL,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]insertedArticle, 0, len(articles))
	for range articles {
		var a insertedArticle
		if err := results.QueryRow().Scan(&a.ArticleID, &a.Title); err != nil {
			return nil, fmt.Errorf("inserting article: %w", err)
		}
		inserted = append(inserted, a)
	}

	return inserted, results.Close()
}

// createRef indexes items by key, keeping value. Later duplicates win.
func createRef[T any, K comparable, V any](items []T, key func(T) K, value func(T) V) map[K]V {
	ref := make(map[K]V, len(items))
	for _, item := range items {
		ref[key(item)] = value(item)
	}
	return ref
}

// formatComments resolves belongs_to titles into article ids and renames
// created_by to author.
func formatComments(comments []seedComment, idLookup map[string]int) ([]commentRow, error) {
	rows := make([]commentRow, 0, len(comments))
	for _, c := range comments {
		articleID, ok := idLookup[c.BelongsTo]
		if !ok {
			return nil, fmt.Errorf("comment references unknown article %q", c.BelongsTo)
		}
		rows = append(rows, commentRow{
			Body:      c.Body,
			ArticleID: articleID,
			Author:    c.CreatedBy,
			Votes:     c.Votes,
			CreatedAt: convertTimestampToDate(c.CreatedAt),
		})
	}
	return rows, nil
}

// convertTimestampToDate turns epoch milliseconds into a UTC time.
// A zero timestamp means "now", mirroring the column default.
func convertTimestampToDate(ms int64) time.Time {
	if ms == 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}
