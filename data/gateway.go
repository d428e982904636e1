package data

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"flowsync_server/metrics"

	"github.com/jmoiron/sqlx"
)

// Gateway is the single execution path for parameterized SQL. Callers write
// portable "?" placeholders; the gateway rebinds them for the driver.
type Gateway struct {
	db               *sqlx.DB
	bindType         int
	statementTimeout time.Duration
}

// GatewayOption tweaks a Gateway at construction.
type GatewayOption func(*Gateway)

// WithStatementTimeout bounds every statement. Zero disables the bound.
func WithStatementTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.statementTimeout = d }
}

// NewGateway wraps an open pool.
func NewGateway(db *sqlx.DB, opts ...GatewayOption) (*Gateway, error) {
	if db == nil {
		return nil, ErrPoolNotInitialized
	}
	g := &Gateway{
		db:       db,
		bindType: sqlx.BindType(db.DriverName()),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// DB exposes the underlying pool for health checks.
func (g *Gateway) DB() *sqlx.DB {
	if g == nil {
		return nil
	}
	return g.db
}

// Rebind rewrites "?" placeholders, left to right, into the marker of the
// given bind type. Every "?" is rewritten, including one inside a quoted
// string literal; callers must not put a literal "?" in SQL text.
func Rebind(bindType int, query string) string {
	return sqlx.Rebind(bindType, query)
}

// Select runs a query and scans all rows into dest, a pointer to a slice.
func (g *Gateway) Select(ctx context.Context, dest interface{}, query string, params ...interface{}) error {
	if err := g.ready(); err != nil {
		return err
	}
	rewritten := Rebind(g.bindType, query)
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	timer := metrics.TrackDBOperation("select", tableOf(query))
	err := g.db.SelectContext(ctx, dest, rewritten, params...)
	timer.ObserveDuration()
	if err != nil {
		return g.fail("select", query, rewritten, params, err)
	}
	return nil
}

// InsertRow runs an INSERT and returns the id of the new row. A RETURNING id
// clause is appended when the statement has none.
func (g *Gateway) InsertRow(ctx context.Context, query string, params ...interface{}) (int64, error) {
	if err := g.ready(); err != nil {
		return 0, err
	}
	if !hasReturning(query) {
		query = strings.TrimRight(strings.TrimSpace(query), ";") + " RETURNING id"
	}
	rewritten := Rebind(g.bindType, query)
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	timer := metrics.TrackDBOperation("insert", tableOf(query))
	var id int64
	err := g.db.QueryRowxContext(ctx, rewritten, params...).Scan(&id)
	timer.ObserveDuration()
	if err != nil {
		return 0, g.fail("insert", query, rewritten, params, err)
	}
	return id, nil
}

// UpdateRow runs an UPDATE and returns the number of changed rows.
func (g *Gateway) UpdateRow(ctx context.Context, query string, params ...interface{}) (int64, error) {
	return g.exec(ctx, "update", query, params)
}

// DeleteRow runs a DELETE and returns the number of removed rows.
func (g *Gateway) DeleteRow(ctx context.Context, query string, params ...interface{}) (int64, error) {
	return g.exec(ctx, "delete", query, params)
}

func (g *Gateway) exec(ctx context.Context, op, query string, params []interface{}) (int64, error) {
	if err := g.ready(); err != nil {
		return 0, err
	}
	rewritten := Rebind(g.bindType, query)
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	timer := metrics.TrackDBOperation(op, tableOf(query))
	res, err := g.db.ExecContext(ctx, rewritten, params...)
	timer.ObserveDuration()
	if err != nil {
		return 0, g.fail(op, query, rewritten, params, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, g.fail(op, query, rewritten, params, err)
	}
	return n, nil
}

func (g *Gateway) ready() error {
	if g == nil || g.db == nil {
		return ErrPoolNotInitialized
	}
	return nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if g.statementTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.statementTimeout)
}

func (g *Gateway) fail(op, query, rewritten string, params []interface{}, err error) error {
	metrics.TrackDBError(op)
	log.Printf("Gateway.%s: query failed: %v\n  sql: %s\n  rewritten: %s\n  params: [%s]", op, err, query, rewritten, describeParams(params))
	return &DataAccessError{
		Op:           op,
		SQL:          query,
		RewrittenSQL: rewritten,
		Params:       params,
		Err:          err,
	}
}

var (
	returningRe = regexp.MustCompile(`(?i)\breturning\b`)
	tableRe     = regexp.MustCompile(`(?i)\b(?:from|into|update)\s+([a-z_][a-z0-9_]*)`)
)

func hasReturning(query string) bool {
	return returningRe.MatchString(query)
}

// tableOf extracts the first table name for metric labels.
func tableOf(query string) string {
	if m := tableRe.FindStringSubmatch(query); len(m) == 2 {
		return strings.ToLower(m[1])
	}
	return "unknown"
}

func describeParams(params []interface{}) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, ", ")
}
