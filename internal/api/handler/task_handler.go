package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-system/internal/api/metrics"
	"github.com/taskforge/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service  ports.TaskService
	activity ports.ActivityService
}

func NewTaskHandler(service ports.TaskService, activity ports.ActivityService) *TaskHandler {
	return &TaskHandler{service: service, activity: activity}
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id" validate:"required"`
	// Status is a free-form label; it defaults to "todo" when omitted.
	Status string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Create handles POST /v1/projects/:id/tasks. Requires the manager role.
//
// @Summary      Create a task in a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Project id"
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Failure      403   {object}  errorMessage
// @Failure      404   {object}  errorMessage
// @Router       /v1/projects/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		ProjectID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		Actor:       principal,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, task)
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// ListByProject handles GET /v1/projects/:id/tasks.
//
// @Summary      List tasks of a project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /v1/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	tasks, err := h.service.ListByProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update handles PUT /v1/tasks/:id. Allowed for the task's assignee
// regardless of role, and for admins; everyone else gets 403.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Failure      403   {object}  errorMessage
// @Failure      404   {object}  errorMessage
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), ports.UpdateTaskInput{
		TaskID:      c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Actor:       principal,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Activity handles GET /v1/tasks/:id/activity, newest entries first.
//
// @Summary      Get the activity feed of a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   domain.ActivityEntry
// @Failure      401  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /v1/tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	entries, err := h.activity.ListByTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
