package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/services"
)

type getTaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	UserID      string `json:"userId"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err.Error()))
		return
	}

	if req.UserID != "" && !h.authorizeUser(c, req.UserID) {
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		abortWithServiceError(c, err, "failed to create task")
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortWithServiceError(c, err, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID := c.Param("userId")
	if !h.authorizeUser(c, userID) {
		return
	}

	tasks, err := h.tasks.ListTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to get tasks")
		abortWithServiceError(c, err, "failed to get tasks")
		return
	}

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID := c.Param("id")
	if !h.authorizeTask(c, taskID, "failed to get task") {
		return
	}

	task, err := h.tasks.GetTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		abortWithServiceError(c, err, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

// Completed is a pointer so an omitted field can be told apart from false.
type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Completed   *bool  `json:"completed"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err.Error()))
		return
	}

	if !h.authorizeTask(c, taskID, "failed to update task") {
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		abortWithServiceError(c, err, "failed to update task")
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
		DueDate:     dueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abortWithServiceError(c, err, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if !h.authorizeTask(c, taskID, "failed to delete task") {
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abortWithServiceError(c, err, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// authorizeTask checks ownership of taskID when the request is
// authenticated and aborts on failure.
func (h *handlerImpl) authorizeTask(c *gin.Context, taskID, internalMessage string) bool {
	requester, ok := requesterID(c)
	if !ok {
		return true
	}

	err := h.tasks.CheckOwner(c, taskID, requester)
	if err != nil {
		abortWithServiceError(c, err, internalMessage)
		return false
	}
	return true
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp. An empty
// value means no due date.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		t, err := time.Parse(layout, value)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &services.ValidationError{
		Message: "invalid task",
		Fields:  []string{"dueDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"},
	}
}
