package models

import (
	"strings"
	"time"
)

// The types below are the typed contracts of the plain CRUD families. Each
// struct doubles as request body and response row; db tags name the columns.

// Task is a to-do item.
type Task struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,max=255"`
	Description *string   `json:"description" db:"description"`
	Status      *string   `json:"status" db:"status" validate:"omitempty,max=50"`
	Priority    *string   `json:"priority" db:"priority" validate:"omitempty,max=50"`
	DueDate     *string   `json:"due_date" db:"due_date" validate:"omitempty,max=50"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults sets the initial status and priority.
func (t *Task) ApplyDefaults() {
	t.Status = defaultString(t.Status, "pending")
	t.Priority = defaultString(t.Priority, "medium")
}

// TaskStatusInput is the body of PATCH /api/tasks/{id}/status.
type TaskStatusInput struct {
	Status string `json:"status" validate:"required,max=50"`
}

// Event is a calendar entry.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,max=255"`
	Description *string   `json:"description" db:"description"`
	StartTime   string    `json:"start_time" db:"start_time" validate:"required,max=50"`
	EndTime     string    `json:"end_time" db:"end_time" validate:"required,max=50"`
	Location    *string   `json:"location" db:"location" validate:"omitempty,max=255"`
	Color       *string   `json:"color" db:"color" validate:"omitempty,max=50"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults sets the accent color.
func (e *Event) ApplyDefaults() {
	e.Color = defaultString(e.Color, DefaultColor)
}

// Pomodoro is one focus session.
type Pomodoro struct {
	ID        int64     `json:"id" db:"id"`
	Duration  *int64    `json:"duration" db:"duration" validate:"omitempty,gte=0"`
	Completed Flag      `json:"completed" db:"completed"`
	StartTime *string   `json:"start_time" db:"start_time"`
	EndTime   *string   `json:"end_time" db:"end_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ApplyDefaults sets a 25 minute session starting now.
func (p *Pomodoro) ApplyDefaults() {
	if p.Duration == nil {
		d := int64(25)
		p.Duration = &d
	}
	p.StartTime = defaultString(p.StartTime, time.Now().UTC().Format(time.RFC3339))
}

// Normalize rewrites zoned start and end times in UTC.
func (p *Pomodoro) Normalize() {
	p.StartTime = utcTimestamp(p.StartTime)
	p.EndTime = utcTimestamp(p.EndTime)
}

// TimeTracking is a stopwatch entry, optionally tied to a task.
type TimeTracking struct {
	ID          int64     `json:"id" db:"id"`
	TaskID      *int64    `json:"task_id" db:"task_id"`
	Description *string   `json:"description" db:"description"`
	StartTime   *string   `json:"start_time" db:"start_time"`
	EndTime     *string   `json:"end_time" db:"end_time"`
	Duration    *int64    `json:"duration" db:"duration" validate:"omitempty,gte=0"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ApplyDefaults starts the tracking now when no start time was given.
func (t *TimeTracking) ApplyDefaults() {
	t.StartTime = defaultString(t.StartTime, time.Now().UTC().Format(time.RFC3339))
}

// Normalize rewrites zoned start and end times in UTC; the columns carry no
// time zone.
func (t *TimeTracking) Normalize() {
	t.StartTime = utcTimestamp(t.StartTime)
	t.EndTime = utcTimestamp(t.EndTime)
}

// StopResult is returned by PATCH /api/time-trackings/{id}/stop.
type StopResult struct {
	ID       int64  `json:"id"`
	EndTime  string `json:"end_time"`
	Duration int64  `json:"duration"`
}

// HealthRecord is a body measurement such as weight or blood pressure.
type HealthRecord struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type" validate:"required,max=50"`
	Value     float64   `json:"value" db:"value"`
	Unit      *string   `json:"unit" db:"unit" validate:"omitempty,max=50"`
	Date      string    `json:"date" db:"date" validate:"required,max=50"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExerciseRecord is a workout.
type ExerciseRecord struct {
	ID             int64     `json:"id" db:"id"`
	Type           string    `json:"type" db:"type" validate:"required,max=50"`
	Duration       int64     `json:"duration" db:"duration" validate:"gte=0"`
	Intensity      *string   `json:"intensity" db:"intensity" validate:"omitempty,max=50"`
	CaloriesBurned *int64    `json:"calories_burned" db:"calories_burned"`
	Date           string    `json:"date" db:"date" validate:"required,max=50"`
	Notes          *string   `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults sets a moderate intensity.
func (e *ExerciseRecord) ApplyDefaults() {
	e.Intensity = defaultString(e.Intensity, "moderate")
}

// SleepRecord is one night of sleep.
type SleepRecord struct {
	ID         int64     `json:"id" db:"id"`
	Bedtime    string    `json:"bedtime" db:"bedtime" validate:"required,max=50"`
	WakeupTime string    `json:"wakeup_time" db:"wakeup_time" validate:"required,max=50"`
	Duration   int64     `json:"duration" db:"duration" validate:"gte=0"`
	Quality    *string   `json:"quality" db:"quality" validate:"omitempty,max=50"`
	Notes      *string   `json:"notes" db:"notes"`
	Date       string    `json:"date" db:"date" validate:"required,max=50"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults rates the night as good.
func (s *SleepRecord) ApplyDefaults() {
	s.Quality = defaultString(s.Quality, "good")
}

// Food is an entry of the nutrition catalogue.
type Food struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required,max=255"`
	Category  string    `json:"category" db:"category" validate:"required,max=50"`
	Calories  int64     `json:"calories" db:"calories" validate:"gte=0"`
	Carbs     float64   `json:"carbs" db:"carbs" validate:"gte=0"`
	Protein   float64   `json:"protein" db:"protein" validate:"gte=0"`
	Fat       float64   `json:"fat" db:"fat" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MealRecord is a logged serving of a food.
type MealRecord struct {
	ID           int64     `json:"id" db:"id"`
	FoodID       int64     `json:"food_id" db:"food_id" validate:"required,gt=0"`
	FoodName     string    `json:"food_name" db:"food_name" validate:"required,max=255"`
	FoodCategory string    `json:"food_category" db:"food_category" validate:"required,max=50"`
	ServingSize  int64     `json:"serving_size" db:"serving_size" validate:"gte=0"`
	Calories     int64     `json:"calories" db:"calories" validate:"gte=0"`
	Carbs        float64   `json:"carbs" db:"carbs" validate:"gte=0"`
	Protein      float64   `json:"protein" db:"protein" validate:"gte=0"`
	Fat          float64   `json:"fat" db:"fat" validate:"gte=0"`
	MealType     string    `json:"meal_type" db:"meal_type" validate:"required,max=50"`
	Date         string    `json:"date" db:"date" validate:"required,max=50"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IncomeRecord is money received.
type IncomeRecord struct {
	ID        int64     `json:"id" db:"id"`
	Amount    float64   `json:"amount" db:"amount"`
	Source    string    `json:"source" db:"source" validate:"required,max=255"`
	Category  string    `json:"category" db:"category" validate:"required,max=50"`
	Date      string    `json:"date" db:"date" validate:"required,max=50"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExpenseRecord is money spent.
type ExpenseRecord struct {
	ID            int64     `json:"id" db:"id"`
	Amount        float64   `json:"amount" db:"amount"`
	Category      string    `json:"category" db:"category" validate:"required,max=50"`
	Description   *string   `json:"description" db:"description"`
	Date          string    `json:"date" db:"date" validate:"required,max=50"`
	PaymentMethod *string   `json:"payment_method" db:"payment_method" validate:"omitempty,max=50"`
	Notes         *string   `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults assumes cash.
func (e *ExpenseRecord) ApplyDefaults() {
	e.PaymentMethod = defaultString(e.PaymentMethod, "cash")
}

// utcTimestamp converts an RFC 3339 value to UTC. Values without a zone or
// in another layout are left as given.
func utcTimestamp(v *string) *string {
	if v == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*v))
	if err != nil {
		return v
	}
	out := ts.UTC().Format(time.RFC3339Nano)
	return &out
}

func defaultString(v *string, def string) *string {
	if v == nil || *v == "" {
		return &def
	}
	return v
}

// Record is the set of families served by the generic record store.
type Record interface {
	Task | Event | Pomodoro | TimeTracking | HealthRecord | ExerciseRecord |
		SleepRecord | Food | MealRecord | IncomeRecord | ExpenseRecord
}
