package metrics

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	operationPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|truncate|drop|create|copy)\b`)
	tablePattern     = regexp.MustCompile(`(?i)\b(?:from|into|update|table)\s+(?:if\s+(?:not\s+)?exists\s+)?([a-z_][a-z0-9_]*)`)
)

// UpdatePoolStats copies a pgxpool snapshot into the connection gauges
func (m *Metrics) UpdatePoolStats(stat *pgxpool.Stat) {
	m.safeExecute("UpdatePoolStats", func() {
		if stat == nil {
			return
		}
		m.DBConnectionsTotal.Set(float64(stat.TotalConns()))
		m.DBConnectionsAcquired.Set(float64(stat.AcquiredConns()))
		m.DBConnectionsIdle.Set(float64(stat.IdleConns()))
		m.DBConnectionsMax.Set(float64(stat.MaxConns()))
	})
}

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

// classifySQL derives the operation and the first table a statement touches.
// Unrecognised statements are labelled "unknown".
func classifySQL(sql string) (string, string) {
	operation, table := "unknown", "unknown"

	if match := operationPattern.FindStringSubmatch(sql); match != nil {
		operation = strings.ToLower(match[1])
	}
	if match := tablePattern.FindStringSubmatch(sql); match != nil {
		table = strings.ToLower(match[1])
	}

	return operation, table
}

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	operation string
	table     string
}

// QueryTracer is a pgx.QueryTracer feeding RecordDBQuery.
type QueryTracer struct {
	metrics *Metrics
}

// NewQueryTracer returns a tracer recording every query into m.
func NewQueryTracer(m *Metrics) *QueryTracer {
	return &QueryTracer{metrics: m}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	operation, table := classifySQL(data.SQL)
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		at:        time.Now(),
		operation: operation,
		table:     table,
	})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	t.metrics.RecordDBQuery(start.operation, start.table, time.Since(start.at), data.Err)
}
