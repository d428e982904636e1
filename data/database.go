package data

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"flowsync_server/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
)

const driverName = "pgx"

// OpenDB opens the shared connection pool and verifies it with a ping. When
// the first attempt fails and SSL was not explicitly disabled, it retries once
// without SSL before giving up with the original error.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := connect(ctx, cfg, dsn)
	if err == nil {
		log.Println("OpenDB: connected to postgres")
		return db, nil
	}
	log.Printf("OpenDB: connection failed: %v", err)

	plain, ok := withoutSSL(dsn)
	if !ok {
		return nil, fmt.Errorf("OpenDB: %w", err)
	}
	log.Println("OpenDB: retrying without SSL")
	db, retryErr := connect(ctx, cfg, plain)
	if retryErr != nil {
		log.Printf("OpenDB: connection without SSL failed too: %v", retryErr)
		return nil, fmt.Errorf("OpenDB: %w", err)
	}
	log.Println("OpenDB: connected to postgres without SSL")
	return db, nil
}

func connect(ctx context.Context, cfg config.Config, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	timeout := cfg.DBConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withoutSSL rewrites the DSN with sslmode=disable. ok is false when SSL was
// already disabled.
func withoutSSL(dsn string) (string, bool) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", false
	}
	q := u.Query()
	if strings.EqualFold(q.Get("sslmode"), "disable") {
		return "", false
	}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String(), true
}

// schemaLockKey serializes schema setup across processes sharing a database.
const schemaLockKey = 7341092

// schemaConn is what the schema steps run on: a pool or a single connection.
type schemaConn interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// EnsureSchema creates every table, trigger and index the server needs. It is
// safe to run on every start and concurrently from several processes.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return ErrPoolNotInitialized
	}

	conn, err := db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("EnsureSchema: acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("EnsureSchema: lock: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, schemaLockKey); err != nil {
			log.Printf("EnsureSchema: unlock failed: %v", err)
		}
	}()

	for _, t := range schemaTables {
		if err := execDDL(ctx, conn, t.ddl); err != nil {
			return fmt.Errorf("EnsureSchema: create table %s: %w", t.name, err)
		}
	}
	log.Println("EnsureSchema: tables ready")

	if err := execDDL(ctx, conn, updatedAtFunctionDDL); err != nil {
		return fmt.Errorf("EnsureSchema: trigger function: %w", err)
	}
	for _, t := range schemaTables {
		if !t.hasUpdatedAt {
			continue
		}
		for _, stmt := range updatedAtTriggerDDL(t.name) {
			if err := execDDL(ctx, conn, stmt); err != nil {
				return fmt.Errorf("EnsureSchema: trigger on %s: %w", t.name, err)
			}
		}
	}

	EnsureNotesSchemaUpgrade(ctx, conn)
	ensureNotebookForeignKey(ctx, conn)

	if err := execDDL(ctx, conn, notesSearchIndexDDL); err != nil {
		return fmt.Errorf("EnsureSchema: search index: %w", err)
	}
	log.Println("EnsureSchema: schema applied successfully")
	return nil
}

// EnsureNotesSchemaUpgrade adds any notes column an older database lacks.
// Failures are logged and skipped so a partially upgraded table still starts.
func EnsureNotesSchemaUpgrade(ctx context.Context, db schemaConn) {
	var existing []string
	err := sqlx.SelectContext(ctx, db, &existing,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = 'notes'`)
	if err != nil {
		log.Printf("EnsureNotesSchemaUpgrade: could not read notes columns: %v", err)
		return
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c] = true
	}

	for _, col := range notesColumns {
		if have[col.name] {
			continue
		}
		if err := execDDL(ctx, db, addColumnDDL("notes", col)); err != nil {
			log.Printf("EnsureNotesSchemaUpgrade: failed to add column %s: %v", col.name, err)
			continue
		}
		log.Printf("EnsureNotesSchemaUpgrade: added column %s to notes", col.name)
	}
}

func ensureNotebookForeignKey(ctx context.Context, db schemaConn) {
	var count int
	err := sqlx.GetContext(ctx, db, &count,
		`SELECT count(*) FROM information_schema.table_constraints WHERE table_schema = current_schema() AND table_name = 'notes' AND constraint_name = 'notes_notebook_id_fk'`)
	if err == nil && count > 0 {
		return
	}
	if _, err := db.ExecContext(ctx, notesNotebookForeignKeyDDL); err != nil {
		if isAlreadyExists(err) {
			return
		}
		log.Printf("ensureNotebookForeignKey: failed to add notes_notebook_id_fk: %v", err)
		return
	}
	log.Println("ensureNotebookForeignKey: added notes_notebook_id_fk")
}

// execDDL runs one DDL statement. "Already exists" and catalog races with a
// concurrent start count as success.
func execDDL(ctx context.Context, db sqlx.ExecerContext, stmt string) error {
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		if isAlreadyExists(err) || strings.Contains(err.Error(), "tuple concurrently updated") {
			return nil
		}
		return err
	}
	return nil
}
