package api

import (
	"time"
	"unicode/utf8"

	"github.com/pontetech/mission-control/internal/domain"
	"github.com/pontetech/mission-control/internal/service"
)

// TokenTypeBearer is the token_type of every issued access token.
const TokenTypeBearer = "bearer"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Password string `json:"password"  validate:"required,min=8,max=128"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserRead is the public representation of a user.
type UserRead struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse defines the successful response of the login endpoint.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"` // seconds
	User        UserRead `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task. Omitted status
// and priority take their defaults.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status"      validate:"omitempty,oneof=backlog in_progress done"`
	Priority    *string `json:"priority"    validate:"omitempty,max=50"`
	DueDate     *string `json:"due_date"`
}

// Validate rejects an explicit empty priority and checks the due date
// format. Omitted status and priority take their defaults.
func (req *CreateTaskRequest) Validate() error {
	if req.Priority != nil && *req.Priority == "" {
		return &requestError{Field: "priority", Message: "must be between 1 and 50 characters"}
	}
	if req.DueDate != nil {
		if _, err := domain.ParseDueDate(*req.DueDate); err != nil {
			return &requestError{Field: "due_date", Message: "invalid datetime format"}
		}
	}
	return nil
}

// ToDraft converts the request to a task draft. Call Validate first.
func (req *CreateTaskRequest) ToDraft() (domain.TaskDraft, error) {
	draft := domain.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		draft.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		draft.Priority = *req.Priority
	}
	if req.DueDate != nil {
		due, err := domain.ParseDueDate(*req.DueDate)
		if err != nil {
			return domain.TaskDraft{}, err
		}
		draft.DueDate = &due
	}
	return draft, nil
}

// UpdateTaskRequest defines the payload for a partial task update. Absent
// fields are left unchanged; null clears description and due_date.
type UpdateTaskRequest struct {
	Title       Nullable[string] `json:"title"`
	Description Nullable[string] `json:"description"`
	Status      Nullable[string] `json:"status"`
	Priority    Nullable[string] `json:"priority"`
	DueDate     Nullable[string] `json:"due_date"`
}

// Validate checks the shape of every supplied field.
func (req *UpdateTaskRequest) Validate() error {
	if req.Title.Present() {
		n := utf8.RuneCountInString(req.Title.Value)
		if n < domain.TaskTitleMinLength || n > domain.TaskTitleMaxLength {
			return &requestError{Field: "title", Message: "must be between 3 and 255 characters"}
		}
	}
	if req.Description.Present() &&
		utf8.RuneCountInString(req.Description.Value) > domain.TaskDescriptionMaxLength {
		return &requestError{Field: "description", Message: "must be at most 2000 characters"}
	}
	if req.Status.Present() && !domain.TaskStatus(req.Status.Value).IsValid() {
		return &requestError{Field: "status", Message: "must be one of backlog, in_progress, done"}
	}
	if req.Priority.Present() {
		n := utf8.RuneCountInString(req.Priority.Value)
		if n == 0 || n > domain.TaskPriorityMaxLength {
			return &requestError{Field: "priority", Message: "must be between 1 and 50 characters"}
		}
	}
	if req.DueDate.Present() {
		if _, err := domain.ParseDueDate(req.DueDate.Value); err != nil {
			return &requestError{Field: "due_date", Message: "invalid datetime format"}
		}
	}
	return nil
}

// ToPatch converts the request to a task patch. Explicit nulls for fields
// that cannot be empty are validation errors.
func (req *UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	required := []struct {
		field string
		value Nullable[string]
	}{
		{"title", req.Title},
		{"status", req.Status},
		{"priority", req.Priority},
	}
	for _, r := range required {
		if r.value.Null {
			return domain.TaskPatch{}, domain.NewValidationError(r.field, "Field "+r.field+" cannot be null")
		}
	}

	if req.Title.Present() {
		patch.Title = &req.Title.Value
	}
	if req.Status.Present() {
		status := domain.TaskStatus(req.Status.Value)
		patch.Status = &status
	}
	if req.Priority.Present() {
		patch.Priority = &req.Priority.Value
	}

	switch {
	case req.Description.Null:
		patch.ClearDescription = true
	case req.Description.Set:
		patch.Description = &req.Description.Value
	}

	switch {
	case req.DueDate.Null:
		patch.ClearDueDate = true
	case req.DueDate.Set:
		due, err := domain.ParseDueDate(req.DueDate.Value)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = &due
	}

	return patch, nil
}

// TaskRead is the public representation of a task.
type TaskRead struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"due_date"`
	OwnerID     int64             `json:"owner_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

func userToResponse(user *domain.User) UserRead {
	return UserRead{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func loginToResponse(result *service.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: result.Token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   result.ExpiresIn,
		User:        userToResponse(result.User),
	}
}

func taskToResponse(task *domain.Task) TaskRead {
	return TaskRead{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskRead {
	response := make([]TaskRead, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}
	return response
}
