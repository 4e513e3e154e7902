package task

import (
	"sort"
	"strings"
	"time"

	"github.com/hrboard/client/domain"
)

// FilterAll is the sentinel meaning "no filter on this field".
const FilterAll = "all"

// Due-date window values for the user variant.
const (
	DueToday    = "today"
	DueThisWeek = "this_week"
	DueOverdue  = "overdue"
)

// Filters narrows and orders the primary collection. Every filter key matches
// by exact field value, with FilterAll disabling that key.
type Filters struct {
	Status     string
	AssignedTo string
	Priority   string
	DueDate    string
	SortBy     string
	SortOrder  string // "asc" or "desc"
}

func defaultFilters(variant Variant) Filters {
	f := Filters{
		Status:     FilterAll,
		AssignedTo: FilterAll,
		Priority:   FilterAll,
		DueDate:    FilterAll,
		SortBy:     "createdAt",
		SortOrder:  "desc",
	}
	if variant == VariantUser {
		f.SortBy = "dueDate"
		f.SortOrder = "asc"
	}
	return f
}

// SetFilters overlays non-empty fields onto the current filters. The admin
// variant jumps back to the first page since the listing changed.
func (s *Store) SetFilters(patch Filters) {
	s.mu.Lock()
	if patch.Status != "" {
		s.filters.Status = patch.Status
	}
	if patch.AssignedTo != "" {
		s.filters.AssignedTo = patch.AssignedTo
	}
	if patch.Priority != "" {
		s.filters.Priority = patch.Priority
	}
	if patch.DueDate != "" {
		s.filters.DueDate = patch.DueDate
	}
	if patch.SortBy != "" {
		s.filters.SortBy = patch.SortBy
	}
	if patch.SortOrder != "" {
		s.filters.SortOrder = patch.SortOrder
	}
	if s.variant == VariantAdmin {
		s.pagination.Page = 1
	}
	s.mu.Unlock()
}

func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// FilteredTasks applies the current filters and sort to a copy of the
// primary collection.
func (s *Store) FilteredTasks() []domain.Task {
	s.mu.Lock()
	tasks := cloneTasks(s.tasks)
	filters := s.filters
	now := s.now()
	s.mu.Unlock()

	filtered := tasks[:0]
	for _, t := range tasks {
		if !matchesField(filters.Status, domain.NormalizeStatus(t.Status)) {
			continue
		}
		if !matchesField(filters.AssignedTo, t.AssignedTo) {
			continue
		}
		if !matchesField(filters.Priority, t.Priority) {
			continue
		}
		if !matchesDueWindow(filters.DueDate, &t, now) {
			continue
		}
		filtered = append(filtered, t)
	}

	sortTasks(filtered, filters.SortBy, filters.SortOrder)
	return filtered
}

// TodayTasks returns tasks due within the current local calendar day.
func (s *Store) TodayTasks() []domain.Task {
	return s.selectTasks(func(t *domain.Task, now time.Time) bool {
		return t.IsDueOn(now)
	})
}

// OverdueTasks returns uncompleted tasks whose due date has passed.
func (s *Store) OverdueTasks() []domain.Task {
	return s.selectTasks(func(t *domain.Task, now time.Time) bool {
		return t.IsOverdue(now)
	})
}

// CompletedTasks returns completed tasks.
func (s *Store) CompletedTasks() []domain.Task {
	return s.selectTasks(func(t *domain.Task, _ time.Time) bool {
		return t.IsCompleted()
	})
}

func (s *Store) selectTasks(keep func(*domain.Task, time.Time) bool) []domain.Task {
	s.mu.Lock()
	tasks := cloneTasks(s.tasks)
	now := s.now()
	s.mu.Unlock()

	out := tasks[:0]
	for i := range tasks {
		if keep(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}
	return out
}

func matchesField(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

func matchesDueWindow(window string, t *domain.Task, now time.Time) bool {
	switch window {
	case "", FilterAll:
		return true
	case DueToday:
		return t.IsDueOn(now)
	case DueThisWeek:
		if t.DueDate == nil {
			return false
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := start.Add(7 * 24 * time.Hour)
		due := t.DueDate.In(now.Location())
		return !due.Before(start) && due.Before(end)
	case DueOverdue:
		return t.IsOverdue(now)
	default:
		return true
	}
}

// sortTasks orders tasks stably on the configured field: strings compare
// case-insensitively, dates by instant.
func sortTasks(tasks []domain.Task, sortBy, sortOrder string) {
	desc := sortOrder == "desc"
	sort.SliceStable(tasks, func(i, j int) bool {
		less := taskLess(&tasks[i], &tasks[j], sortBy)
		if desc {
			return taskLess(&tasks[j], &tasks[i], sortBy)
		}
		return less
	})
}

func taskLess(a, b *domain.Task, sortBy string) bool {
	switch sortBy {
	case "name":
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case "status":
		return strings.ToLower(a.Status) < strings.ToLower(b.Status)
	case "priority":
		return strings.ToLower(a.Priority) < strings.ToLower(b.Priority)
	case "assignedTo":
		return strings.ToLower(a.AssignedTo) < strings.ToLower(b.AssignedTo)
	case "dueDate":
		return timePtrBefore(a.DueDate, b.DueDate)
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default: // createdAt
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// timePtrBefore orders missing due dates after any concrete one.
func timePtrBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
