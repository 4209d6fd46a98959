package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpletodo/internal/models"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func task(id, title string, age time.Duration, opts ...func(*models.Task)) models.Task {
	t := models.Task{
		ID:          id,
		Title:       title,
		CreatedDate: now.Add(-age),
		Priority:    models.PriorityMedium,
		Category:    models.DefaultCategory,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func done(t *models.Task) { t.IsCompleted = true }
func high(t *models.Task) { t.Priority = models.PriorityHigh }
func low(t *models.Task) { t.Priority = models.PriorityLow }
func category(c string) func(*models.Task) {
	return func(t *models.Task) { t.Category = c }
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func sample() []models.Task {
	return []models.Task{
		task("a", "Write report", time.Hour, high),
		task("b", "Buy milk", 2*time.Hour, category("Shopping")),
		task("c", "Call mom", 48*time.Hour, done),
		task("d", "Fix bike", 72*time.Hour, high),
		task("e", "Old chore", 30*time.Hour, low),
		task("f", "Ship parcel", 3*time.Hour, high, done),
	}
}

func TestRun_Filters(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []string
	}{
		{filter: FilterAll, want: []string{"a", "b", "c", "d", "e", "f"}},
		{filter: FilterPending, want: []string{"a", "b", "d", "e"}},
		{filter: FilterCompleted, want: []string{"c", "f"}},
		{filter: FilterOverdue, want: []string{"d", "e"}},
		{filter: FilterHighPriority, want: []string{"a", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Run(sample(), Options{Filter: tt.filter, Now: now})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRun_HighPriorityIgnoresSort(t *testing.T) {
	for _, s := range Sorts() {
		got := Run(sample(), Options{Filter: FilterHighPriority, Sort: s, Now: now})
		require.Len(t, got, 2, "sort %s", s)
		for _, task := range got {
			assert.Equal(t, models.PriorityHigh, task.Priority)
			assert.False(t, task.IsCompleted)
		}
	}
}

func TestRun_SearchMatchesTitleOrCategoryCaseInsensitive(t *testing.T) {
	got := Run(sample(), Options{Search: "MILK", Now: now})
	assert.Equal(t, []string{"b"}, ids(got))

	got = Run(sample(), Options{Search: "shop", Now: now})
	assert.Equal(t, []string{"b"}, ids(got))

	got = Run(sample(), Options{Search: "general", Filter: FilterCompleted, Now: now})
	assert.Equal(t, []string{"c", "f"}, ids(got))

	got = Run(sample(), Options{Search: "nothing like this", Now: now})
	assert.Empty(t, got)
}

func TestRun_SortNewestAndOldest(t *testing.T) {
	got := Run(sample(), Options{Sort: SortNewest, Now: now})
	assert.Equal(t, []string{"a", "b", "f", "e", "c", "d"}, ids(got))

	got = Run(sample(), Options{Sort: SortOldest, Now: now})
	assert.Equal(t, []string{"d", "c", "e", "f", "b", "a"}, ids(got))
}

func TestRun_SortAlphabetical(t *testing.T) {
	tasks := []models.Task{
		task("1", "banana", time.Hour),
		task("2", "Apple", time.Hour),
		task("3", "cherry", time.Hour),
	}

	got := Run(tasks, Options{Sort: SortAlphabetical, Now: now})
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(got))
}

func TestRun_SortAlphabeticalIsNumericAware(t *testing.T) {
	tasks := []models.Task{
		task("1", "Task 10", time.Hour),
		task("2", "task 2", time.Hour),
		task("3", "Task 1", time.Hour),
	}

	got := Run(tasks, Options{Sort: SortAlphabetical, Now: now})
	assert.Equal(t, []string{"Task 1", "task 2", "Task 10"}, titles(got))
}

func TestRun_SortPriority(t *testing.T) {
	tasks := []models.Task{
		task("m1", "medium newer", time.Hour),
		task("h-old", "high older", 5*time.Hour, high),
		task("l1", "low", 2*time.Hour, low),
		task("h-new", "high newer", 30*time.Minute, high),
		task("m2", "medium older", 4*time.Hour),
	}

	got := Run(tasks, Options{Sort: SortPriority, Now: now})

	// Medium ties are not ordered by date; they keep collection order.
	assert.Equal(t, []string{"h-new", "h-old", "m1", "m2", "l1"}, ids(got))
}

func TestRun_SortPriorityMediumTiesKeepCollectionOrder(t *testing.T) {
	tasks := []models.Task{
		task("older", "older", 4*time.Hour),
		task("newer", "newer", time.Hour),
	}

	got := Run(tasks, Options{Sort: SortPriority, Now: now})
	assert.Equal(t, []string{"older", "newer"}, ids(got))
}

func TestRun_SortCompletion(t *testing.T) {
	got := Run(sample(), Options{Sort: SortCompletion, Now: now})
	assert.Equal(t, []string{"a", "b", "e", "d", "f", "c"}, ids(got))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	tasks := sample()
	before := ids(tasks)

	_ = Run(tasks, Options{Sort: SortOldest, Now: now})

	assert.Equal(t, before, ids(tasks))
}

func TestRun_EmptyCollection(t *testing.T) {
	got := Run(nil, Options{Filter: FilterPending, Sort: SortPriority})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseFilterAndSort(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("highPriority")
	require.NoError(t, err)
	assert.Equal(t, FilterHighPriority, f)

	_, err = ParseFilter("urgent")
	assert.Error(t, err)

	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, s)

	s, err = ParseSort("completion")
	require.NoError(t, err)
	assert.Equal(t, SortCompletion, s)

	_, err = ParseSort("random")
	assert.Error(t, err)
}

func TestFiltersAndSortsAreComplete(t *testing.T) {
	assert.Len(t, Filters(), 5)
	assert.Len(t, Sorts(), 5)
	for _, f := range Filters() {
		assert.True(t, f.Valid())
	}
	for _, s := range Sorts() {
		assert.True(t, s.Valid())
	}
}
