package data

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"flowsync_server/models"

	"github.com/jmoiron/sqlx"
)

// RecordStore serves one plain CRUD table described by a Resource.
type RecordStore[T models.Record] struct {
	gw  *Gateway
	res Resource
}

func NewRecordStore[T models.Record](gw *Gateway, res Resource) *RecordStore[T] {
	return &RecordStore[T]{gw: gw, res: res}
}

// List returns the rows matching the resource's filters. Unknown keys and
// empty values are ignored.
func (s *RecordStore[T]) List(ctx context.Context, filters map[string]string) ([]T, error) {
	query := `SELECT ` + s.res.selectList() + ` FROM ` + s.res.Table + ` WHERE 1=1`
	var params []interface{}
	for _, f := range s.res.Filters {
		if v := filters[f.Param]; v != "" {
			query += ` AND ` + f.Column + ` = ?`
			params = append(params, v)
		}
	}
	if s.res.SearchColumn != "" {
		if term := strings.TrimSpace(filters["search"]); term != "" {
			query += ` AND LOWER(` + s.res.SearchColumn + `) LIKE LOWER(?)`
			params = append(params, "%"+term+"%")
		}
	}
	if s.res.OrderBy != "" {
		query += ` ORDER BY ` + s.res.OrderBy
	}

	rows := []T{}
	if err := s.gw.Select(ctx, &rows, query, params...); err != nil {
		return nil, fmt.Errorf("List %s: %w", s.res.Table, err)
	}
	return rows, nil
}

func (s *RecordStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	var rows []T
	err := s.gw.Select(ctx, &rows, `SELECT `+s.res.selectList()+` FROM `+s.res.Table+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("Get %s: id %d: %w", s.res.Table, id, err)
	}
	if len(rows) == 0 {
		return nil, newNotFound(s.res.Label, id)
	}
	return &rows[0], nil
}

// Create applies defaults, validates and inserts rec, then returns the
// stored row.
func (s *RecordStore[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, newValidationError("request body is required")
	}
	if d, ok := any(rec).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	normalize(rec)
	if err := validateInput(rec); err != nil {
		return nil, err
	}
	query, params, err := compileNamed(s.res.insertSQL(), rec)
	if err != nil {
		return nil, fmt.Errorf("Create %s: %w", s.res.Table, err)
	}
	id, err := s.gw.InsertRow(ctx, query, params...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, newValidationError("%s references a missing row", strings.ToLower(s.res.Label))
		}
		return nil, fmt.Errorf("Create %s: %w", s.res.Table, err)
	}
	log.Printf("Create %s: created row %d", s.res.Table, id)
	return s.Get(ctx, id)
}

// Update overwrites every writable column of row id with rec.
func (s *RecordStore[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	if rec == nil {
		return nil, newValidationError("request body is required")
	}
	normalize(rec)
	if err := validateInput(rec); err != nil {
		return nil, err
	}
	query, params, err := compileNamed(s.res.updateSQL(), rec)
	if err != nil {
		return nil, fmt.Errorf("Update %s: %w", s.res.Table, err)
	}
	n, err := s.gw.UpdateRow(ctx, query+` WHERE id = ?`, append(params, id)...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, newValidationError("%s references a missing row", strings.ToLower(s.res.Label))
		}
		return nil, fmt.Errorf("Update %s: id %d: %w", s.res.Table, id, err)
	}
	if n == 0 {
		return nil, newNotFound(s.res.Label, id)
	}
	return s.Get(ctx, id)
}

func (s *RecordStore[T]) Delete(ctx context.Context, id int64) error {
	n, err := s.gw.DeleteRow(ctx, `DELETE FROM `+s.res.Table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Delete %s: id %d: %w", s.res.Table, id, err)
	}
	if n == 0 {
		return newNotFound(s.res.Label, id)
	}
	log.Printf("Delete %s: deleted row %d", s.res.Table, id)
	return nil
}

func normalize(rec interface{}) {
	if n, ok := rec.(models.Normalizer); ok {
		n.Normalize()
	}
}

// compileNamed turns ":column" markers into "?" placeholders and collects
// the matching struct fields as plain driver values.
func compileNamed(query string, arg interface{}) (string, []interface{}, error) {
	compiled, params, err := sqlx.Named(query, arg)
	if err != nil {
		return "", nil, err
	}
	for i, p := range params {
		if f, ok := p.(models.Flag); ok {
			params[i] = f.Int64()
		}
	}
	return compiled, params, nil
}

// TaskStore adds the status shortcut to the task table.
type TaskStore struct {
	*RecordStore[models.Task]
}

func NewTaskStore(gw *Gateway) *TaskStore {
	return &TaskStore{RecordStore: NewRecordStore[models.Task](gw, TasksResource)}
}

// UpdateStatus changes only the status of a task.
func (s *TaskStore) UpdateStatus(ctx context.Context, id int64, in models.TaskStatusInput) (*models.Task, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	n, err := s.gw.UpdateRow(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, in.Status, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateTaskStatus: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound(s.res.Label, id)
	}
	return s.Get(ctx, id)
}

// TimeTrackingStore adds stopping a running tracking.
type TimeTrackingStore struct {
	*RecordStore[models.TimeTracking]
}

func NewTimeTrackingStore(gw *Gateway) *TimeTrackingStore {
	return &TimeTrackingStore{RecordStore: NewRecordStore[models.TimeTracking](gw, TimeTrackingsResource)}
}

// Stop ends the tracking at now and stores its length in whole seconds.
func (s *TimeTrackingStore) Stop(ctx context.Context, id int64, now time.Time) (*models.StopResult, error) {
	var starts []sql.NullTime
	if err := s.gw.Select(ctx, &starts, `SELECT start_time FROM time_trackings WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("StopTimeTracking: id %d: %w", id, err)
	}
	if len(starts) == 0 {
		return nil, newNotFound(s.res.Label, id)
	}
	if !starts[0].Valid {
		return nil, newValidationError("time tracking %d has no start time", id)
	}

	end := now.UTC()
	duration := int64(math.Round(end.Sub(starts[0].Time).Seconds()))
	n, err := s.gw.UpdateRow(ctx,
		`UPDATE time_trackings SET end_time = ?, duration = ? WHERE id = ?`, end, duration, id)
	if err != nil {
		return nil, fmt.Errorf("StopTimeTracking: id %d: %w", id, err)
	}
	if n == 0 {
		return nil, newNotFound(s.res.Label, id)
	}
	return &models.StopResult{ID: id, EndTime: end.Format(time.RFC3339), Duration: duration}, nil
}
