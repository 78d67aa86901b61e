package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-tracker/internal/middleware"
	"github.com/iliyamo/task-tracker/internal/model"
	"github.com/iliyamo/task-tracker/internal/repository"
	"github.com/iliyamo/task-tracker/internal/service"
)

// TaskHandler bundles dependencies for task CRUD endpoints. Every endpoint
// runs behind JWTAuth; the handler resolves the token subject to a user
// record before touching any task.
type TaskHandler struct {
	Tasks *service.TaskService
	Auth  *service.AuthService
	Cache middleware.CacheInvalidator
}

func NewTaskHandler(t *service.TaskService, a *service.AuthService, cache middleware.CacheInvalidator) *TaskHandler {
	return &TaskHandler{Tasks: t, Auth: a, Cache: cache}
}

// caller resolves the authenticated subject to its user record. A verified
// token whose subject no longer exists yields 404, completing the gate the
// JWT middleware started.
func (h *TaskHandler) caller(c echo.Context) (*model.User, *echo.HTTPError) {
	email, _ := c.Get(middleware.ContextEmailKey).(string)
	if email == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Auth.CurrentUser(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "user does not exist")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "load user failed")
	}
	return u, nil
}

// CreateTask handles POST /create-task. The task id and owner are always
// server-assigned; client-supplied values for those fields are ignored by
// the request shape.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	u, httpErr := h.caller(c)
	if httpErr != nil {
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	}
	var in service.NewTask
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, err := h.Tasks.Create(c.Request().Context(), u.ID, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	h.Cache.Bump(c.Request().Context(), u.Email)
	return c.JSON(http.StatusCreated, echo.Map{"detail": "task created successfully", "task": t})
}

// GetTask handles GET /get-task. With ?task_id= it returns the single task
// when owned by the caller; without it, all of the caller's tasks.
func (h *TaskHandler) GetTask(c echo.Context) error {
	u, httpErr := h.caller(c)
	if httpErr != nil {
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	}
	if raw := c.QueryParam("task_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task_id"})
		}
		t, err := h.Tasks.Get(c.Request().Context(), u.ID, id)
		if err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get task failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"task": t})
	}

	tasks, err := h.Tasks.List(c.Request().Context(), u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get tasks failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"task": tasks})
}

// UpdateTask handles PATCH /update-task/:task_id. Only the provided fields
// are merged; an empty payload and a zero-row update are both rejected.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	u, httpErr := h.caller(c)
	if httpErr != nil {
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	}
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task_id"})
	}
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, err := h.Tasks.Update(c.Request().Context(), u.ID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields provided to update"})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found for update"})
		case errors.Is(err, repository.ErrNoChange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "task update failed or no changes were made"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update task failed"})
		}
	}
	h.Cache.Bump(c.Request().Context(), u.Email)
	return c.JSON(http.StatusOK, echo.Map{"detail": "task updated successfully", "task": t})
}

// DeleteTask handles DELETE /delete-task/:task_id.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	u, httpErr := h.caller(c)
	if httpErr != nil {
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	}
	id, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task_id"})
	}
	if err := h.Tasks.Delete(c.Request().Context(), u.ID, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found or already deleted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete task failed"})
	}
	h.Cache.Bump(c.Request().Context(), u.Email)
	return c.JSON(http.StatusOK, echo.Map{"detail": fmt.Sprintf("task %d deleted successfully", id)})
}
