// Package todo owns the task collection. Every mutation goes through a Store,
// which writes the whole collection to its Persister after each change and
// notifies subscribers.
package todo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"simpletodo/internal/models"
	"simpletodo/internal/query"
)

// Persister mirrors the collection into durable storage.
type Persister interface {
	Save(ctx context.Context, tasks []models.Task) error
	Load(ctx context.Context) ([]models.Task, error)
}

// Store is the single owner of the task collection. It is safe for
// concurrent use; mutations are serialized.
type Store struct {
	mu        sync.RWMutex
	tasks     []models.Task
	view      View
	persister Persister

	log    *slog.Logger
	now    func() time.Time
	newID  func() string
	strict bool

	subMu     sync.Mutex
	subs      []subscription
	nextSubID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the task ID generator (random UUIDs by default).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithStrictPersistence makes mutators return save failures. The mutation
// itself is still applied in memory.
func WithStrictPersistence() Option {
	return func(s *Store) { s.strict = true }
}

// New creates a Store and loads the saved collection. A failed load is
// logged and the store starts empty.
func New(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		view:      DefaultView(),
		log:       slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load(ctx)
	if err != nil {
		s.log.Error("failed to load tasks", "error", err)
		tasks = nil
	}
	s.tasks = s.sanitize(tasks)
	s.log.Debug("tasks loaded", "count", len(s.tasks))

	return s
}

// sanitize restores the collection invariants on loaded data: titles are
// trimmed, categories normalized, and tasks that fail validation or repeat an
// earlier id are dropped. Order is preserved.
func (s *Store) sanitize(tasks []models.Task) []models.Task {
	seen := make(map[string]struct{}, len(tasks))
	kept := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		t.Title = t.DisplayTitle()
		t.Category = models.NormalizeCategory(t.Category)

		if err := t.Validate(); err != nil {
			s.log.Warn("dropping invalid stored task", "id", t.ID, "error", err)
			continue
		}
		if t.ID == "" {
			s.log.Warn("dropping stored task without id", "title", t.Title)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.log.Warn("dropping stored task with duplicate id", "id", t.ID)
			continue
		}

		seen[t.ID] = struct{}{}
		kept = append(kept, t)
	}
	return kept
}

// persist writes the whole collection. Must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.tasks); err != nil {
		s.log.Error("failed to save tasks", "error", err, "count", len(s.tasks))
		return err
	}
	return nil
}

// finish releases the write lock, notifies subscribers and decides which
// error the caller sees.
func (s *Store) finish(kind EventKind, ids []string, persistErr error) error {
	s.mu.Unlock()
	s.notify(Event{Kind: kind, TaskIDs: ids, PersistErr: persistErr})
	if s.strict {
		return persistErr
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddOption customizes a task created by Add.
type AddOption func(*models.Task)

// WithPriority sets the priority of the new task.
func WithPriority(p models.Priority) AddOption {
	return func(t *models.Task) { t.Priority = p }
}

// WithCategory sets the category of the new task.
func WithCategory(c string) AddOption {
	return func(t *models.Task) { t.Category = c }
}

// Add creates an open task at the front of the collection. The title is
// trimmed; an empty result is rejected with ErrEmptyTitle.
func (s *Store) Add(ctx context.Context, title string, opts ...AddOption) (models.Task, error) {
	task := models.Task{
		Title:    strings.TrimSpace(title),
		Priority: models.PriorityMedium,
		Category: models.DefaultCategory,
	}
	for _, opt := range opts {
		opt(&task)
	}
	task.Category = models.NormalizeCategory(task.Category)

	if task.Title == "" {
		return models.Task{}, ErrEmptyTitle
	}
	if !task.Priority.Valid() {
		return models.Task{}, ErrInvalidPriority
	}

	s.mu.Lock()
	task.ID = s.newID()
	task.CreatedDate = s.now().UTC()
	s.tasks = append([]models.Task{task}, s.tasks...)
	err := s.persist(ctx)

	return task, s.finish(EventAdded, []string{task.ID}, err)
}

// Toggle flips the completion state of the task with the given id.
func (s *Store) Toggle(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}

	s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
	task := s.tasks[i]
	err := s.persist(ctx)

	return task, s.finish(EventToggled, []string{id}, err)
}

// TaskPatch holds the fields to overwrite in Update. Nil fields are left unchanged.
type TaskPatch struct {
	Title    *string
	Priority *models.Priority
	Category *string
}

// Update overwrites the provided fields of a task. The patch is validated as
// a whole before anything changes.
func (s *Store) Update(ctx context.Context, id string, p TaskPatch) (models.Task, error) {
	var title string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Task{}, ErrEmptyTitle
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return models.Task{}, ErrInvalidPriority
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, ErrTaskNotFound
	}

	if p.Title != nil {
		s.tasks[i].Title = title
	}
	if p.Priority != nil {
		s.tasks[i].Priority = *p.Priority
	}
	if p.Category != nil {
		s.tasks[i].Category = models.NormalizeCategory(*p.Category)
	}
	task := s.tasks[i]
	err := s.persist(ctx)

	return task, s.finish(EventUpdated, []string{id}, err)
}

// Delete removes the task with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrTaskNotFound
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	err := s.persist(ctx)

	return s.finish(EventDeleted, []string{id}, err)
}

// DeleteWhere removes every task for which match returns true and reports
// how many were removed. The collection is saved even when nothing matched.
func (s *Store) DeleteWhere(ctx context.Context, match func(models.Task) bool) (int, error) {
	s.mu.Lock()
	removed := s.removeLocked(func(_ int, t models.Task) bool { return match(t) })
	err := s.persist(ctx)

	return len(removed), s.finish(EventDeleted, removed, err)
}

// DeleteAt removes the tasks at the given positions of the collection.
// Out-of-range and repeated positions are ignored.
func (s *Store) DeleteAt(ctx context.Context, positions ...int) (int, error) {
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		drop[p] = struct{}{}
	}

	s.mu.Lock()
	removed := s.removeLocked(func(i int, _ models.Task) bool {
		_, ok := drop[i]
		return ok
	})
	err := s.persist(ctx)

	return len(removed), s.finish(EventDeleted, removed, err)
}

// ClearAll empties the collection and saves the empty collection.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	removed := s.removeLocked(func(int, models.Task) bool { return true })
	err := s.persist(ctx)

	return len(removed), s.finish(EventCleared, removed, err)
}

// ClearCompleted removes every completed task.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	removed := s.removeLocked(func(_ int, t models.Task) bool { return t.IsCompleted })
	err := s.persist(ctx)

	return len(removed), s.finish(EventCleared, removed, err)
}

// removeLocked rebuilds the collection without the dropped tasks, preserving
// order, and returns their IDs. Must be called with mu held.
func (s *Store) removeLocked(drop func(i int, t models.Task) bool) []string {
	var removed []string
	kept := make([]models.Task, 0, len(s.tasks))
	for i, t := range s.tasks {
		if drop(i, t) {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return removed
}

// Tasks returns a copy of the collection in stored order (newest added first).
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task{}, s.tasks...)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return s.tasks[i], nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Query evaluates opts against the live collection without touching the view.
// A zero opts.Now uses the store clock.
func (s *Store) Query(opts query.Options) []models.Task {
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.Run(s.tasks, opts)
}

// Categories summarizes the collection per category.
func (s *Store) Categories() []models.CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SummarizeCategories(s.tasks)
}

// CategorySuggestions returns the predefined categories plus those in use.
func (s *Store) CategorySuggestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CategorySuggestions(s.tasks)
}
