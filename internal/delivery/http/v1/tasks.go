package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"choretracker/internal/chore"
	"choretracker/internal/models"
	"choretracker/internal/services"
)

type getChoreResponse struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	FrequencyDays int    `json:"frequency_days,omitempty"`
	LastCompleted string `json:"last_completed"`
	DaysSince     int    `json:"days_since_completed"`
	State         string `json:"state"`
	DaysLate      int    `json:"days_late,omitempty"`
}

func (h *handlerImpl) newGetChoreResponse(task models.Task) getChoreResponse {
	today := h.clk.Today()
	resp := getChoreResponse{
		Name:          task.Name,
		Type:          task.Type.String(),
		FrequencyDays: task.FrequencyDays,
		LastCompleted: task.LastCompleted.String(),
		DaysSince:     task.DaysSinceCompleted(today),
	}

	state, err := chore.Classify(task, today)
	if err != nil {
		// Unknown types never reach here; stored rows with bad tags are
		// already skipped by the task service.
		h.logger.Warn().
			Str("name", task.Name).
			Msg("failed to classify task")
		return resp
	}
	resp.State = state.Kind.String()
	resp.DaysLate = state.DaysLate
	return resp
}

type listChoresResponse struct {
	Chores []getChoreResponse `json:"chores"`
}

func (h *handlerImpl) HandleListChores(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.ListTasksByOwner(c, ownerID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list chores")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	resp := listChoresResponse{Chores: make([]getChoreResponse, 0, len(tasks))}
	for _, task := range tasks {
		resp.Chores = append(resp.Chores, h.newGetChoreResponse(task))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlerImpl) HandleFindChores(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	prefix := c.Query("q")
	tasks, err := h.tasks.FindTasksByNamePrefix(c, ownerID, prefix)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to find chores")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	resp := listChoresResponse{Chores: make([]getChoreResponse, 0, len(tasks))}
	for _, task := range tasks {
		resp.Chores = append(resp.Chores, h.newGetChoreResponse(task))
	}
	c.JSON(http.StatusOK, resp)
}

type addChoreRequest struct {
	Name          string `json:"chore_name" binding:"required,max=255"`
	FrequencyDays int    `json:"chore_frequency"`
	Type          string `json:"chore_type"`
}

func (h *handlerImpl) HandleAddChore(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req addChoreRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	taskType, ok := parseTypeName(req.Type)
	if !ok {
		abort(c, newBadRequestError("unknown chore type"))
		return
	}
	if taskType == models.TaskRegular && req.FrequencyDays < 1 {
		abort(c, newBadRequestError("chore frequency must be positive"))
		return
	}

	task := models.Task{
		OwnerID:       ownerID,
		Name:          req.Name,
		Type:          taskType,
		FrequencyDays: req.FrequencyDays,
	}

	err = h.tasks.AddTask(c, task)
	if err != nil {
		if errors.Is(err, services.ErrTaskAlreadyExists) {
			abort(c, newConflictError(services.ErrTaskAlreadyExists.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to add chore")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	task.LastCompleted = h.clk.Today()
	c.JSON(http.StatusCreated, h.newGetChoreResponse(task))
}

func (h *handlerImpl) HandleCompleteChore(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	name := c.Param("name")
	err := h.tasks.CompleteTask(c, ownerID, name)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to complete chore")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusOK)
}

func (h *handlerImpl) HandleDeleteChore(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no owner id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	name := c.Param("name")
	err := h.tasks.DeleteTask(c, ownerID, name)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete chore")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusOK)
}

func (h *handlerImpl) HandleRunAlerts(c *gin.Context) {
	err := h.alerts.RunAlertPassNow(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to run alert pass")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusOK)
}

func parseTypeName(name string) (models.TaskType, bool) {
	switch name {
	case "", "regular":
		return models.TaskRegular, true
	case "once_off":
		return models.TaskOnceOff, true
	case "counter":
		return models.TaskCounter, true
	default:
		return 0, false
	}
}
