package controllers

import (
	"net/http"
	"time"

	"flowsync_server/data"
	"flowsync_server/middleware"
	"flowsync_server/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the stores and settings the router wires into handlers.
type Deps struct {
	Notes     NoteStore
	Notebooks NotebookStore
	Snippets  CodeSnippetStore
	Relations RelationStore

	Tasks           TaskStore
	Events          Records[models.Event]
	Pomodoros       Records[models.Pomodoro]
	TimeTrackings   TimeTrackingStore
	HealthRecords   Records[models.HealthRecord]
	ExerciseRecords Records[models.ExerciseRecord]
	SleepRecords    Records[models.SleepRecord]
	Foods           Records[models.Food]
	MealRecords     Records[models.MealRecord]
	IncomeRecords   Records[models.IncomeRecord]
	ExpenseRecords  Records[models.ExpenseRecord]

	DB      Pinger
	Version string

	// Auth guards every /api route except /api/health when set.
	Auth         func(http.Handler) http.Handler
	MaxBodyBytes int64
	Now          func() time.Time
}

// NewRouter assembles every route. CORS and panic recovery wrap the result in
// main, outside the router, so preflight requests never reach it.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, middleware.Metrics, middleware.BodyLimit(d.MaxBodyBytes))

	health := NewHealthController(d.DB, d.Version)
	router.HandleFunc("/", health.Status).Methods(http.MethodGet)
	router.HandleFunc("/api/health", health.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	if d.Auth != nil {
		api.Use(d.Auth)
	}

	notebooks := NewNotebookController(d.Notebooks)
	api.HandleFunc("/notebooks", notebooks.List).Methods(http.MethodGet)
	api.HandleFunc("/notebooks", notebooks.Create).Methods(http.MethodPost)
	api.HandleFunc("/notebooks/{id:[0-9]+}", notebooks.Get).Methods(http.MethodGet)
	api.HandleFunc("/notebooks/{id:[0-9]+}", notebooks.Update).Methods(http.MethodPut)
	api.HandleFunc("/notebooks/{id:[0-9]+}", notebooks.Delete).Methods(http.MethodDelete)

	notes := NewNotesController(d.Notes)
	notesRouter := api.PathPrefix("/notes").Subrouter()
	notesRouter.HandleFunc("", notes.List).Methods(http.MethodGet)
	notesRouter.HandleFunc("", notes.Create).Methods(http.MethodPost)
	// search must be registered before the {id} routes.
	notesRouter.HandleFunc("/search", notes.Search).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{id:[0-9]+}", notes.Get).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{id:[0-9]+}", notes.Update).Methods(http.MethodPut)
	notesRouter.HandleFunc("/{id:[0-9]+}", notes.Delete).Methods(http.MethodDelete)
	notesRouter.HandleFunc("/{id:[0-9]+}/draft", notes.PatchDraft).Methods(http.MethodPatch)
	for suffix, flag := range flagRoutes {
		notesRouter.HandleFunc("/{id:[0-9]+}/"+suffix, notes.PatchFlag(flag)).Methods(http.MethodPatch)
	}
	notesRouter.HandleFunc("/{id:[0-9]+}/summary", notes.GenerateSummary).Methods(http.MethodPost)
	notesRouter.HandleFunc("/{id:[0-9]+}/mind-map", notes.GenerateMindMap).Methods(http.MethodPost)

	snippets := NewCodeSnippetController(d.Snippets)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets", snippets.List).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets", snippets.Create).Methods(http.MethodPost)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets/{id:[0-9]+}", snippets.Get).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets/{id:[0-9]+}", snippets.Update).Methods(http.MethodPut)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets/{id:[0-9]+}", snippets.Delete).Methods(http.MethodDelete)
	notesRouter.HandleFunc("/{note_id:[0-9]+}/code-snippets/{id:[0-9]+}/run", snippets.Run).Methods(http.MethodPost)

	relations := NewRelationController(d.Relations)
	notesRouter.HandleFunc("/{id:[0-9]+}/relations", relations.List).Methods(http.MethodGet)
	notesRouter.HandleFunc("/{id:[0-9]+}/relations", relations.Add).Methods(http.MethodPost)
	notesRouter.HandleFunc("/{id:[0-9]+}/relations/{related_note_id:[0-9]+}", relations.Remove).Methods(http.MethodDelete)

	NewTaskController(d.Tasks).Register(api)
	NewRecordController(d.Events, data.EventsResource).Register(api)
	NewRecordController(d.Pomodoros, data.PomodorosResource).Register(api)
	NewTimeTrackingController(d.TimeTrackings, d.Now).Register(api)
	NewRecordController(d.HealthRecords, data.HealthRecordsResource).Register(api)
	NewRecordController(d.ExerciseRecords, data.ExerciseRecordsResource).Register(api)
	NewRecordController(d.SleepRecords, data.SleepRecordsResource).Register(api)
	NewRecordController(d.Foods, data.FoodsResource).Register(api)
	NewRecordController(d.MealRecords, data.MealRecordsResource).Register(api)
	NewRecordController(d.IncomeRecords, data.IncomeRecordsResource).Register(api)
	NewRecordController(d.ExpenseRecords, data.ExpenseRecordsResource).Register(api)

	return router
}
