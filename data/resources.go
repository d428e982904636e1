package data

import "strings"

// Op is one operation a resource exposes over HTTP.
type Op uint8

const (
	OpList Op = 1 << iota
	OpGet
	OpCreate
	OpUpdate
	OpDelete

	OpCRUD = OpList | OpGet | OpCreate | OpUpdate | OpDelete
)

// Filter maps a query string parameter onto an equality condition.
type Filter struct {
	Param  string
	Column string
}

// Resource describes one plain CRUD table.
type Resource struct {
	Name  string // URL segment under /api
	Table string
	Label string // used in delete confirmations

	// Columns are written on create and update, in this order.
	Columns []string
	// Timestamps are the read-only audit columns of the table.
	Timestamps []string

	Filters []Filter
	// SearchColumn, when set, is matched case-insensitively against the
	// "search" query parameter.
	SearchColumn string
	OrderBy      string
	Ops          Op
}

// Allows reports whether op is enabled for the resource.
func (r Resource) Allows(op Op) bool { return r.Ops&op == op }

func (r Resource) selectList() string {
	cols := make([]string, 0, len(r.Columns)+len(r.Timestamps)+1)
	cols = append(cols, "id")
	cols = append(cols, r.Columns...)
	cols = append(cols, r.Timestamps...)
	return strings.Join(cols, ", ")
}

func (r Resource) insertSQL() string {
	named := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		named[i] = ":" + c
	}
	return "INSERT INTO " + r.Table + " (" + strings.Join(r.Columns, ", ") + ") VALUES (" + strings.Join(named, ", ") + ")"
}

func (r Resource) updateSQL() string {
	sets := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		sets[i] = c + " = :" + c
	}
	return "UPDATE " + r.Table + " SET " + strings.Join(sets, ", ")
}

var (
	audit        = []string{"created_at", "updated_at"}
	createdOnly  = []string{"created_at"}
	datedRecords = "date DESC, created_at DESC, id DESC"
)

// The plain CRUD families.
var (
	TasksResource = Resource{
		Name: "tasks", Table: "tasks", Label: "Task",
		Columns:    []string{"title", "description", "status", "priority", "due_date"},
		Timestamps: audit,
		OrderBy:    "created_at DESC, id DESC",
		Ops:        OpCRUD,
	}
	EventsResource = Resource{
		Name: "events", Table: "events", Label: "Event",
		Columns:    []string{"title", "description", "start_time", "end_time", "location", "color"},
		Timestamps: audit,
		OrderBy:    "start_time ASC, id ASC",
		Ops:        OpCRUD,
	}
	PomodorosResource = Resource{
		Name: "pomodoros", Table: "pomodoros", Label: "Pomodoro record",
		Columns:    []string{"duration", "completed", "start_time", "end_time"},
		Timestamps: createdOnly,
		OrderBy:    "created_at DESC, id DESC",
		Ops:        OpList | OpCreate | OpUpdate | OpDelete,
	}
	TimeTrackingsResource = Resource{
		Name: "time-trackings", Table: "time_trackings", Label: "Time tracking record",
		Columns:    []string{"task_id", "description", "start_time", "end_time", "duration"},
		Timestamps: createdOnly,
		OrderBy:    "start_time DESC, id DESC",
		Ops:        OpList | OpCreate | OpUpdate | OpDelete,
	}
	HealthRecordsResource = Resource{
		Name: "health-records", Table: "health_records", Label: "Health record",
		Columns:    []string{"type", "value", "unit", "date", "notes"},
		Timestamps: audit,
		Filters:    []Filter{{"type", "type"}, {"date", "date"}},
		OrderBy:    datedRecords,
		Ops:        OpCRUD,
	}
	ExerciseRecordsResource = Resource{
		Name: "exercise-records", Table: "exercise_records", Label: "Exercise record",
		Columns:    []string{"type", "duration", "intensity", "calories_burned", "date", "notes"},
		Timestamps: audit,
		Filters:    []Filter{{"type", "type"}, {"date", "date"}, {"intensity", "intensity"}},
		OrderBy:    datedRecords,
		Ops:        OpCRUD,
	}
	SleepRecordsResource = Resource{
		Name: "sleep-records", Table: "sleep_records", Label: "Sleep record",
		Columns:    []string{"bedtime", "wakeup_time", "duration", "quality", "notes", "date"},
		Timestamps: audit,
		Filters:    []Filter{{"date", "date"}, {"quality", "quality"}},
		OrderBy:    datedRecords,
		Ops:        OpCRUD,
	}
	FoodsResource = Resource{
		Name: "foods", Table: "foods", Label: "Food",
		Columns:      []string{"name", "category", "calories", "carbs", "protein", "fat"},
		Timestamps:   createdOnly,
		Filters:      []Filter{{"category", "category"}},
		SearchColumn: "name",
		OrderBy:      "name ASC, id ASC",
		Ops:          OpList | OpGet | OpCreate,
	}
	MealRecordsResource = Resource{
		Name: "meal-records", Table: "meal_records", Label: "Meal record",
		Columns:    []string{"food_id", "food_name", "food_category", "serving_size", "calories", "carbs", "protein", "fat", "meal_type", "date"},
		Timestamps: createdOnly,
		Filters:    []Filter{{"date", "date"}, {"meal_type", "meal_type"}},
		OrderBy:    "created_at DESC, id DESC",
		Ops:        OpList | OpCreate | OpDelete,
	}
	IncomeRecordsResource = Resource{
		Name: "income-records", Table: "income_records", Label: "Income record",
		Columns:    []string{"amount", "source", "category", "date", "notes"},
		Timestamps: audit,
		Filters:    []Filter{{"category", "category"}, {"source", "source"}, {"date", "date"}},
		OrderBy:    datedRecords,
		Ops:        OpCRUD,
	}
	ExpenseRecordsResource = Resource{
		Name: "expense-records", Table: "expense_records", Label: "Expense record",
		Columns:    []string{"amount", "category", "description", "date", "payment_method", "notes"},
		Timestamps: audit,
		Filters:    []Filter{{"category", "category"}, {"payment_method", "payment_method"}, {"date", "date"}},
		OrderBy:    datedRecords,
		Ops:        OpCRUD,
	}
)
