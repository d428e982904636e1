package data

import (
	"fmt"

	"github.com/lib/pq"
)

type tableDDL struct {
	name         string
	ddl          string
	hasUpdatedAt bool
}

// schemaTables is in dependency order: referenced tables come first.
var schemaTables = []tableDDL{
	{name: "tasks", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    status VARCHAR(50) DEFAULT 'pending',
    priority VARCHAR(50) DEFAULT 'medium',
    due_date VARCHAR(50),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "events", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    start_time VARCHAR(50) NOT NULL,
    end_time VARCHAR(50) NOT NULL,
    location VARCHAR(255),
    color VARCHAR(50) DEFAULT '#3B82F6',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "pomodoros", ddl: `
CREATE TABLE IF NOT EXISTS pomodoros (
    id SERIAL PRIMARY KEY,
    duration INT DEFAULT 25,
    completed INT DEFAULT 0,
    start_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    end_time TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "time_trackings", ddl: `
CREATE TABLE IF NOT EXISTS time_trackings (
    id SERIAL PRIMARY KEY,
    task_id INT,
    description TEXT,
    start_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    end_time TIMESTAMP,
    duration INT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE SET NULL
)`},
	{name: "notebooks", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS notebooks (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    color VARCHAR(50) DEFAULT '#3B82F6',
    is_default INT DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "notes", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS notes (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    content TEXT,
    category VARCHAR(50),
    is_favorite INT DEFAULT 0,
    is_archived INT DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    notebook_id INT,
    draft_content TEXT,
    tags TEXT[],
    is_marked INT DEFAULT 0,
    last_saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    ai_summary TEXT,
    mind_map JSONB
)`},
	{name: "note_relations", ddl: `
CREATE TABLE IF NOT EXISTS note_relations (
    id SERIAL PRIMARY KEY,
    note_id INT NOT NULL,
    related_note_id INT NOT NULL,
    relation_type VARCHAR(50) DEFAULT 'related',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE,
    FOREIGN KEY (related_note_id) REFERENCES notes(id) ON DELETE CASCADE,
    UNIQUE (note_id, related_note_id)
)`},
	{name: "code_snippets", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS code_snippets (
    id SERIAL PRIMARY KEY,
    note_id INT NOT NULL,
    language VARCHAR(50) NOT NULL,
    code_content TEXT NOT NULL,
    run_params JSONB,
    output TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
)`},
	{name: "health_records", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS health_records (
    id SERIAL PRIMARY KEY,
    type VARCHAR(50) NOT NULL,
    value DECIMAL(10,2) NOT NULL,
    unit VARCHAR(50),
    date VARCHAR(50) NOT NULL,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "exercise_records", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS exercise_records (
    id SERIAL PRIMARY KEY,
    type VARCHAR(50) NOT NULL,
    duration INT NOT NULL,
    intensity VARCHAR(50) DEFAULT 'moderate',
    calories_burned INT,
    date VARCHAR(50) NOT NULL,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "sleep_records", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS sleep_records (
    id SERIAL PRIMARY KEY,
    bedtime VARCHAR(50) NOT NULL,
    wakeup_time VARCHAR(50) NOT NULL,
    duration INT NOT NULL,
    quality VARCHAR(50) DEFAULT 'good',
    notes TEXT,
    date VARCHAR(50) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "foods", ddl: `
CREATE TABLE IF NOT EXISTS foods (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    category VARCHAR(50) NOT NULL,
    calories INT NOT NULL,
    carbs DECIMAL(10,2) NOT NULL,
    protein DECIMAL(10,2) NOT NULL,
    fat DECIMAL(10,2) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "meal_records", ddl: `
CREATE TABLE IF NOT EXISTS meal_records (
    id SERIAL PRIMARY KEY,
    food_id INT NOT NULL,
    food_name VARCHAR(255) NOT NULL,
    food_category VARCHAR(50) NOT NULL,
    serving_size INT NOT NULL,
    calories INT NOT NULL,
    carbs DECIMAL(10,2) NOT NULL,
    protein DECIMAL(10,2) NOT NULL,
    fat DECIMAL(10,2) NOT NULL,
    meal_type VARCHAR(50) NOT NULL,
    date VARCHAR(50) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
)`},
	{name: "income_records", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS income_records (
    id SERIAL PRIMARY KEY,
    amount DECIMAL(10,2) NOT NULL,
    source VARCHAR(255) NOT NULL,
    category VARCHAR(50) NOT NULL,
    date VARCHAR(50) NOT NULL,
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
	{name: "expense_records", hasUpdatedAt: true, ddl: `
CREATE TABLE IF NOT EXISTS expense_records (
    id SERIAL PRIMARY KEY,
    amount DECIMAL(10,2) NOT NULL,
    category VARCHAR(50) NOT NULL,
    description TEXT,
    date VARCHAR(50) NOT NULL,
    payment_method VARCHAR(50) DEFAULT 'cash',
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`},
}

type columnDDL struct {
	name string
	typ  string
}

// notesColumns is the full column set of notes, used to upgrade tables
// created by older releases.
var notesColumns = []columnDDL{
	{name: "content", typ: "TEXT"},
	{name: "category", typ: "VARCHAR(50)"},
	{name: "is_favorite", typ: "INT DEFAULT 0"},
	{name: "is_archived", typ: "INT DEFAULT 0"},
	{name: "created_at", typ: "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
	{name: "updated_at", typ: "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
	{name: "notebook_id", typ: "INT"},
	{name: "draft_content", typ: "TEXT"},
	{name: "tags", typ: "TEXT[]"},
	{name: "is_marked", typ: "INT DEFAULT 0"},
	{name: "last_saved_at", typ: "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
	{name: "ai_summary", typ: "TEXT"},
	{name: "mind_map", typ: "JSONB"},
}

func addColumnDDL(table string, col columnDDL) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(col.name), col.typ)
}

const updatedAtFunctionDDL = `
CREATE OR REPLACE FUNCTION set_updated_at()
RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = CURRENT_TIMESTAMP;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql`

// updatedAtTriggerDDL recreates the BEFORE UPDATE trigger of one table.
func updatedAtTriggerDDL(table string) []string {
	trigger := pq.QuoteIdentifier("update_" + table + "_updated_at")
	quoted := pq.QuoteIdentifier(table)
	return []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, quoted),
		fmt.Sprintf("CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION set_updated_at()", trigger, quoted),
	}
}

const notesNotebookForeignKeyDDL = `ALTER TABLE notes ADD CONSTRAINT notes_notebook_id_fk FOREIGN KEY (notebook_id) REFERENCES notebooks(id) ON DELETE SET NULL`

// searchDocument is the text the full-text index covers. Search queries must
// use the same expression for the index to apply.
const searchDocument = `to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(content, ''))`

const notesSearchIndexDDL = `CREATE INDEX IF NOT EXISTS notes_search_idx ON notes USING GIN (` + searchDocument + `)`
