package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Flag
	}{
		{`1`, 1},
		{`0`, 0},
		{`5`, 1},
		{`true`, 1},
		{`false`, 0},
		{`"true"`, 1},
		{`"1"`, 1},
		{`"yes"`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFlagMarshalIsZeroOrOne(t *testing.T) {
	b, err := json.Marshal(struct {
		A Flag `json:"a"`
		B Flag `json:"b"`
	}{A: 7, B: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":0}`, string(b))
	assert.Equal(t, int64(1), Flag(3).Int64())
}

func TestParseFlag(t *testing.T) {
	_, ok := ParseFlag("")
	assert.False(t, ok)

	f, ok := ParseFlag("1")
	assert.True(t, ok)
	assert.Equal(t, Flag(1), f)

	f, ok = ParseFlag("TRUE")
	assert.True(t, ok)
	assert.Equal(t, Flag(1), f)

	f, ok = ParseFlag("0")
	assert.True(t, ok)
	assert.Equal(t, Flag(0), f)

	f, ok = ParseFlag("false")
	assert.True(t, ok)
	assert.Equal(t, Flag(0), f)

	for _, raw := range []string{"abc", "2", "yes", " "} {
		_, ok = ParseFlag(raw)
		assert.False(t, ok, raw)
	}
}

func TestFlagResultJSON(t *testing.T) {
	b, err := json.Marshal(FlagResult{ID: 4, Name: FlagArchived, Value: 9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"is_archived":1}`, string(b))

	assert.True(t, FlagMarked.Valid())
	assert.False(t, NoteFlag("is_deleted").Valid())
}

func TestTagsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tags
	}{
		{"array", `["a","b"]`, Tags{"a", "b"}},
		{"scalar string", `"x"`, Tags{}},
		{"object", `{"a":1}`, Tags{}},
		{"mixed", `["a",null,2,true]`, Tags{"a", "2", "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in NoteInput
			require.NoError(t, json.Unmarshal([]byte(`{"title":"t","tags":`+tt.in+`}`), &in))
			assert.Equal(t, tt.want, in.Tags)
		})
	}
}

func TestTagsMarshalNilAsEmpty(t *testing.T) {
	b, err := json.Marshal(Note{Title: "x"})
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, []interface{}{}, out["tags"])
	assert.Nil(t, out["mind_map"])
}

func TestTagsScan(t *testing.T) {
	var tags Tags
	require.NoError(t, tags.Scan(`{go,"hello world"}`))
	assert.Equal(t, Tags{"go", "hello world"}, tags)

	require.NoError(t, tags.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, Tags{"a", "b"}, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, Tags{}, tags)

	require.NoError(t, tags.Scan(`{}`))
	assert.Equal(t, Tags{}, tags)

	assert.Error(t, tags.Scan(42))
}

func TestMindMapScanAndParam(t *testing.T) {
	var mm MindMap
	require.NoError(t, mm.Scan(`{"nodes":[{"id":"1","label":"root","x":0,"y":0}],"links":[]}`))
	require.Len(t, mm.Nodes, 1)
	assert.Equal(t, "root", mm.Nodes[0].Label)

	require.NoError(t, mm.Scan(nil))
	assert.Empty(t, mm.Nodes)
	assert.Error(t, mm.Scan(`not json`))

	var nilMap *MindMap
	p, err := nilMap.Param()
	require.NoError(t, err)
	assert.Nil(t, p)

	empty := &MindMap{}
	p, err = empty.Param()
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"links":[]}`, p.(string))
	assert.Nil(t, empty.Nodes)
	assert.Nil(t, empty.Links)
}

func TestJSONDocument(t *testing.T) {
	var in CodeSnippetInput
	require.NoError(t, json.Unmarshal([]byte(`{"language":"go","code_content":"x","run_params":{"args":["-v"]}}`), &in))
	assert.JSONEq(t, `{"args":["-v"]}`, in.RunParams.Param().(string))

	var empty JSONDocument
	assert.Nil(t, empty.Param())
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var doc JSONDocument
	require.NoError(t, doc.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(doc))
	assert.Error(t, doc.Scan(3.5))
}

func TestValidateMessages(t *testing.T) {
	err := Validate(&NoteInput{})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	err = Validate(&NoteInput{Title: string(long)})
	require.Error(t, err)
	assert.Equal(t, "title must be at most 255 characters", err.Error())

	err = Validate(&MealRecord{FoodName: "Apple", FoodCategory: "fruit", MealType: "lunch", Date: "2024-01-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "food_id is required")

	err = Validate(&Food{Name: "Apple", Category: "fruit", Calories: -1})
	require.Error(t, err)
	assert.Equal(t, "calories must be at least 0", err.Error())

	assert.NoError(t, Validate(&TaskStatusInput{Status: "done"}))
}

func TestRecordDefaults(t *testing.T) {
	task := &Task{Title: "t"}
	task.ApplyDefaults()
	assert.Equal(t, "pending", *task.Status)
	assert.Equal(t, "medium", *task.Priority)

	custom := "high"
	task = &Task{Title: "t", Priority: &custom}
	task.ApplyDefaults()
	assert.Equal(t, "high", *task.Priority)

	ev := &Event{}
	ev.ApplyDefaults()
	assert.Equal(t, DefaultColor, *ev.Color)

	p := &Pomodoro{}
	p.ApplyDefaults()
	assert.Equal(t, int64(25), *p.Duration)
	assert.NotNil(t, p.StartTime)

	ex := &ExpenseRecord{}
	ex.ApplyDefaults()
	assert.Equal(t, "cash", *ex.PaymentMethod)

	s := &SleepRecord{}
	s.ApplyDefaults()
	assert.Equal(t, "good", *s.Quality)

	e := &ExerciseRecord{}
	e.ApplyDefaults()
	assert.Equal(t, "moderate", *e.Intensity)

	nb := &NotebookInput{Title: "n"}
	nb.ApplyDefaults()
	assert.Equal(t, DefaultColor, nb.Color)
}

func TestTimestampsNormalizeToUTC(t *testing.T) {
	start, end, local := "2024-01-01T18:00:00+08:00", "2024-01-01T18:30:00.5+08:00", "2024-01-01 10:00:00"
	tt := &TimeTracking{StartTime: &start, EndTime: &end}
	tt.Normalize()
	assert.Equal(t, "2024-01-01T10:00:00Z", *tt.StartTime)
	assert.Equal(t, "2024-01-01T10:30:00.5Z", *tt.EndTime)

	tt = &TimeTracking{StartTime: &local}
	tt.Normalize()
	assert.Equal(t, local, *tt.StartTime)
	assert.Nil(t, tt.EndTime)

	p := &Pomodoro{StartTime: &start}
	p.Normalize()
	assert.Equal(t, "2024-01-01T10:00:00Z", *p.StartTime)
}
