package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-service/internal/api/metrics"
	"github.com/taskflow/task-service/internal/core/ports"
)

// TaskHandler serves the /api/task routes. Every route acts on the caller's
// own tasks; ownership is enforced by the task service.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/task/get-all-tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Zero-based page"      default(0)
// @Param        size    query     int     false  "Page size"            default(10)
// @Param        sort    query     string  false  "dueDate, title or status"  default(dueDate)
// @Success      200     {object}  taskPageResponse
// @Failure      401     {object}  messageResponse
// @Router       /api/task/get-all-tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := intQuery(c, "page", 0)
	if err != nil {
		return badRequest(c, "page must be an integer")
	}
	size, err := intQuery(c, "size", 10)
	if err != nil {
		return badRequest(c, "size must be an integer")
	}

	result, err := h.service.ListTasks(c.Request().Context(), who, ports.ListTasksInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Size:   size,
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, taskPageResponse{
		Content:       toTaskResponses(result.Items),
		TotalElements: result.Total,
		TotalPages:    result.TotalPages,
		Number:        result.Page,
		Size:          result.Size,
	})
}

// Create handles POST /api/task/create.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/task/create [post]
func (h *TaskHandler) Create(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), who, toTaskInput(req))
	if err != nil {
		return respondError(c, err)
	}
	metrics.TaskMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Get handles GET /api/task/getById/:id.
//
// @Summary      Get an own task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/task/getById/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.service.GetTask(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// ByUser handles GET /api/task/getByUserId/:userId.
//
// @Summary      List every task of a user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Owner username; must be the caller"
// @Success      200     {array}   taskResponse
// @Success      204
// @Failure      403     {object}  messageResponse
// @Router       /api/task/getByUserId/{userId} [get]
func (h *TaskHandler) ByUser(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	tasks, err := h.service.TasksByUser(c.Request().Context(), who, c.Param("userId"))
	if err != nil {
		return respondError(c, err)
	}
	if len(tasks) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Update handles PUT /api/task/update-task/:id.
//
// @Summary      Replace an own task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Task"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/task/update-task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	task, err := h.service.UpdateTask(c.Request().Context(), who, c.Param("id"), toTaskInput(req))
	if err != nil {
		return respondError(c, err)
	}
	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/task/delete-task/:id.
//
// @Summary      Delete an own task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  messageResponse
// @Router       /api/task/delete-task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteTask(c.Request().Context(), who, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()

	return c.NoContent(http.StatusNoContent)
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
