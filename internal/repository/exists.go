package repository

import (
	"context"
	"fmt"
)

// existsTarget is a (table, column) pair the existence probe may look at.
type existsTarget struct {
	table  string
	column string
}

var (
	articleByID = existsTarget{table: "articles", column: "article_id"}
	topicBySlug = existsTarget{table: "topics", column: "slug"}
)

func (t existsTarget) query() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", t.table, t.column)
}

// exists reports whether a row with column = value is present.
func exists(ctx context.Context, db DBTX, target existsTarget, value any) (bool, error) {
	var found bool
	if err := db.QueryRow(ctx, target.query(), value).Scan(&found); err != nil {
		return false, fmt.Errorf("probing %s.%s: %w", target.table, target.column, err)
	}
	return found, nil
}
