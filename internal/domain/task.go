package domain

import (
	"math"
	"time"
	"unicode/utf8"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Allowed task statuses.
const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Field limits and defaults for tasks.
const (
	TaskTitleMinLength       = 3
	TaskTitleMaxLength       = 255
	TaskDescriptionMaxLength = 2000
	TaskPriorityMaxLength    = 50
	DefaultTaskPriority      = "medium"
)

// UpcomingWindow is how far ahead of now a due date counts as upcoming on the dashboard.
const UpcomingWindow = 72 * time.Hour

// naiveDueDateLayouts are accepted for due dates that carry no zone offset.
// Such values are taken to be UTC.
var naiveDueDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// IsValid reports whether s is one of the allowed statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	OwnerID     int64      `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskDraft holds the caller-supplied fields of a new task. Zero Status and
// Priority values mean the field was omitted and are replaced by their
// defaults.
type TaskDraft struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    string
	DueDate     *time.Time
}

// NewTask builds a validated task for ownerID from the draft.
func (d TaskDraft) NewTask(ownerID int64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     NormalizeDueDate(d.DueDate),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = TaskStatusBacklog
	}
	if task.Priority == "" {
		task.Priority = DefaultTaskPriority
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// TaskPatch describes a partial update. Nil pointers leave the field
// unchanged. ClearDescription and ClearDueDate set the nullable fields to
// null and take precedence over the corresponding pointer.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *TaskStatus
	Priority         *string
	DueDate          *time.Time
	ClearDueDate     bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.Status == nil && p.Priority == nil && p.DueDate == nil && !p.ClearDueDate
}

// Apply merges the patch into the task and validates the result. The task
// is left untouched when validation fails.
func (t *Task) Apply(p TaskPatch) error {
	updated := *t
	if p.Title != nil {
		updated.Title = *p.Title
	}
	switch {
	case p.ClearDescription:
		updated.Description = nil
	case p.Description != nil:
		description := *p.Description
		updated.Description = &description
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}
	if p.Priority != nil {
		updated.Priority = *p.Priority
	}
	switch {
	case p.ClearDueDate:
		updated.DueDate = nil
	case p.DueDate != nil:
		updated.DueDate = NormalizeDueDate(p.DueDate)
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}

// Validate checks the task's fields against the task limits.
func (t *Task) Validate() error {
	titleLen := utf8.RuneCountInString(t.Title)
	if titleLen < TaskTitleMinLength || titleLen > TaskTitleMaxLength {
		return NewValidationError("title", "Title must be between 3 and 255 characters")
	}
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > TaskDescriptionMaxLength {
		return NewValidationError("description", "Description must be at most 2000 characters")
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "Status must be one of backlog, in_progress, done")
	}
	if n := utf8.RuneCountInString(t.Priority); n == 0 || n > TaskPriorityMaxLength {
		return NewValidationError("priority", "Priority must be between 1 and 50 characters")
	}
	if t.OwnerID <= 0 {
		return NewValidationError("owner_id", "Task must have an owner")
	}
	return nil
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID int64) bool {
	return t.OwnerID == userID
}

// NormalizeDueDate returns a copy of due converted to UTC, or nil.
func NormalizeDueDate(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	utc := due.UTC()
	return &utc
}

// ParseDueDate parses an RFC 3339 timestamp, or a timestamp without zone
// offset which is interpreted as UTC. The result is always in UTC.
func ParseDueDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed.UTC(), nil
	}
	for _, layout := range naiveDueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, NewValidationError("due_date", "Due date must be an ISO 8601 timestamp")
}

// TaskCounts are the raw aggregates behind a dashboard summary.
type TaskCounts struct {
	Total              int64
	Completed          int64
	Upcoming           int64
	DistinctPriorities int64
}

// DashboardSummary is the per-user overview of task progress.
type DashboardSummary struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	UpcomingTasks  int64   `json:"upcoming_tasks"`
	ActiveProjects int64   `json:"active_projects"`
}

// NewDashboardSummary derives the summary from counts. The completion rate
// is a percentage rounded to two decimals, and zero when there are no tasks.
func NewDashboardSummary(counts TaskCounts) DashboardSummary {
	summary := DashboardSummary{
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		UpcomingTasks:  counts.Upcoming,
		ActiveProjects: counts.DistinctPriorities,
	}
	if counts.Total > 0 {
		rate := float64(counts.Completed) / float64(counts.Total) * 100
		summary.CompletionRate = math.Round(rate*100) / 100
	}
	return summary
}
