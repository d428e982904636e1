package controllers

import (
	"context"
	"net/http"
	"time"

	"flowsync_server/data"
	"flowsync_server/models"

	"github.com/gorilla/mux"
)

// Records is the generic CRUD contract of data.RecordStore.
type Records[T models.Record] interface {
	List(ctx context.Context, filters map[string]string) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id int64, rec *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// RecordController serves one plain CRUD family under /api/<name>.
type RecordController[T models.Record] struct {
	store Records[T]
	res   data.Resource
}

func NewRecordController[T models.Record](store Records[T], res data.Resource) *RecordController[T] {
	return &RecordController[T]{store: store, res: res}
}

// Register adds the routes the resource enables.
func (c *RecordController[T]) Register(r *mux.Router) {
	base := "/" + c.res.Name
	item := base + "/{id:[0-9]+}"
	if c.res.Allows(data.OpList) {
		r.HandleFunc(base, c.List).Methods(http.MethodGet)
	}
	if c.res.Allows(data.OpCreate) {
		r.HandleFunc(base, c.Create).Methods(http.MethodPost)
	}
	if c.res.Allows(data.OpGet) {
		r.HandleFunc(item, c.Get).Methods(http.MethodGet)
	}
	if c.res.Allows(data.OpUpdate) {
		r.HandleFunc(item, c.Update).Methods(http.MethodPut)
	}
	if c.res.Allows(data.OpDelete) {
		r.HandleFunc(item, c.Delete).Methods(http.MethodDelete)
	}
}

func (c *RecordController[T]) List(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	rows, err := c.store.List(r.Context(), filters)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondList(w, rows)
}

func (c *RecordController[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rec, err := c.store.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (c *RecordController[T]) Create(w http.ResponseWriter, r *http.Request) {
	var in T
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := c.store.Create(r.Context(), &in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (c *RecordController[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in T
	if !decodeJSON(w, r, &in) {
		return
	}
	rec, err := c.store.Update(r.Context(), id, &in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (c *RecordController[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondDeleted(w, c.res.Label)
}

// TaskStore adds the status shortcut to the task records.
type TaskStore interface {
	Records[models.Task]
	UpdateStatus(ctx context.Context, id int64, in models.TaskStatusInput) (*models.Task, error)
}

// TaskController serves /api/tasks.
type TaskController struct {
	*RecordController[models.Task]
	tasks TaskStore
}

func NewTaskController(store TaskStore) *TaskController {
	return &TaskController{
		RecordController: NewRecordController[models.Task](store, data.TasksResource),
		tasks:            store,
	}
}

func (c *TaskController) Register(r *mux.Router) {
	c.RecordController.Register(r)
	r.HandleFunc("/tasks/{id:[0-9]+}/status", c.UpdateStatus).Methods(http.MethodPatch)
}

// UpdateStatus handles PATCH /api/tasks/{id}/status.
func (c *TaskController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.TaskStatusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	task, err := c.tasks.UpdateStatus(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// TimeTrackingStore adds stopping a running tracking.
type TimeTrackingStore interface {
	Records[models.TimeTracking]
	Stop(ctx context.Context, id int64, now time.Time) (*models.StopResult, error)
}

// TimeTrackingController serves /api/time-trackings.
type TimeTrackingController struct {
	*RecordController[models.TimeTracking]
	trackings TimeTrackingStore
	now       func() time.Time
}

func NewTimeTrackingController(store TimeTrackingStore, now func() time.Time) *TimeTrackingController {
	if now == nil {
		now = time.Now
	}
	return &TimeTrackingController{
		RecordController: NewRecordController[models.TimeTracking](store, data.TimeTrackingsResource),
		trackings:        store,
		now:              now,
	}
}

func (c *TimeTrackingController) Register(r *mux.Router) {
	c.RecordController.Register(r)
	r.HandleFunc("/time-trackings/{id:[0-9]+}/stop", c.Stop).Methods(http.MethodPatch)
}

// Stop handles PATCH /api/time-trackings/{id}/stop.
func (c *TimeTrackingController) Stop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := c.trackings.Stop(r.Context(), id, c.now())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
