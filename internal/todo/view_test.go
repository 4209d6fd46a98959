package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpletodo/internal/models"
	"simpletodo/internal/query"
)

func TestView_DefaultsToAllNewest(t *testing.T) {
	s := newTestStore(t, &fakePersister{})
	assert.Equal(t, View{Filter: query.FilterAll, Sort: query.SortNewest}, s.View())
}

func TestVisible_FollowsViewAndLiveCollection(t *testing.T) {
	s := newTestStore(t, &fakePersister{})
	ctx := context.Background()

	s.Add(ctx, "banana")
	apple, _ := s.Add(ctx, "Apple", WithPriority(models.PriorityHigh))
	s.Add(ctx, "cherry", WithCategory("Shopping"))

	assert.Equal(t, []string{"cherry", "Apple", "banana"}, titlesOf(s.Visible()))

	require.NoError(t, s.SetSort(query.SortAlphabetical))
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titlesOf(s.Visible()))

	require.NoError(t, s.SetFilter(query.FilterHighPriority))
	assert.Equal(t, []string{"Apple"}, titlesOf(s.Visible()))

	// The view is recomputed from the live collection on every call.
	s.Toggle(ctx, apple.ID)
	assert.Empty(t, s.Visible())

	require.NoError(t, s.SetFilter(query.FilterAll))
	s.SetSearch("shop")
	assert.Equal(t, []string{"cherry"}, titlesOf(s.Visible()))
}

func TestSetView_RejectsUnknownValues(t *testing.T) {
	s := newTestStore(t, &fakePersister{})

	assert.Error(t, s.SetFilter("urgent"))
	assert.Error(t, s.SetSort("random"))
	assert.Error(t, s.SetView(View{Filter: query.FilterPending, Sort: "random"}))

	assert.Equal(t, DefaultView(), s.View())
}

func TestSetView_DoesNotPersist(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(t, p)

	require.NoError(t, s.SetView(View{Filter: query.FilterPending, Sort: query.SortPriority, Search: "x"}))
	assert.Equal(t, 0, p.saves())
}

func TestSetView_UnchangedViewDoesNotNotify(t *testing.T) {
	s := newTestStore(t, &fakePersister{})

	calls := 0
	s.Subscribe(func(Event) { calls++ })

	require.NoError(t, s.SetFilter(query.FilterAll))
	assert.Equal(t, 0, calls)

	require.NoError(t, s.SetFilter(query.FilterPending))
	assert.Equal(t, 1, calls)
}

func TestQuery_DoesNotChangeView(t *testing.T) {
	s := newTestStore(t, &fakePersister{})
	ctx := context.Background()
	s.Add(ctx, "open")
	done, _ := s.Add(ctx, "done")
	s.Toggle(ctx, done.ID)

	got := s.Query(query.Options{Filter: query.FilterCompleted})
	assert.Equal(t, []string{"done"}, titlesOf(got))
	assert.Equal(t, DefaultView(), s.View())
}

func TestCategories(t *testing.T) {
	s := newTestStore(t, &fakePersister{})
	ctx := context.Background()
	s.Add(ctx, "a", WithCategory("Garden"))
	s.Add(ctx, "b", WithCategory("  "))

	assert.Equal(t, []string{"General", "Work", "Personal", "Shopping", "Garden"}, s.CategorySuggestions())

	summaries := s.Categories()
	require.Len(t, summaries, 5)
	assert.Equal(t, models.CategorySummary{Name: "General", Total: 1, Pending: 1}, summaries[0])
	assert.Equal(t, models.CategorySummary{Name: "Garden", Total: 1, Pending: 1}, summaries[4])
}

func TestApplyView_ReturnsTasksForEditedView(t *testing.T) {
	s := newTestStore(t, &fakePersister{})
	ctx := context.Background()
	s.Add(ctx, "open one")
	done, _ := s.Add(ctx, "done one")
	s.Toggle(ctx, done.ID)

	// A listener that rewrites the view runs after ApplyView has evaluated it.
	s.Subscribe(func(e Event) {
		if e.Kind == EventViewChanged {
			_ = s.SetFilter(query.FilterPending)
		}
	})

	got, err := s.ApplyView(func(v *View) { v.Filter = query.FilterCompleted })
	require.NoError(t, err)
	assert.Equal(t, []string{"done one"}, titlesOf(got))
	assert.Equal(t, query.FilterPending, s.View().Filter)
}

func TestApplyView_RejectsUnknownValues(t *testing.T) {
	s := newTestStore(t, &fakePersister{})

	got, err := s.ApplyView(func(v *View) { v.Sort = "random" })
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, DefaultView(), s.View())
}
