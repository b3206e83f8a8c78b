package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
)

type TimeEntryHandler struct {
	entryService *services.TimeEntryService
}

func NewTimeEntryHandler(entryService *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entryService: entryService}
}

type createTimeEntryRequest struct {
	TaskID      string     `json:"taskId" binding:"required"`
	StartTime   *time.Time `json:"startTime" binding:"required"`
	EndTime     *time.Time `json:"endTime"`
	Duration    *int       `json:"duration" binding:"omitempty,min=0"`
	Description *string    `json:"description"`
}

// ListTimeEntries returns entries of ?taskId=, or the caller's entries
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.entryService.List(c.Request.Context(), services.ListTimeEntriesInput{
		UserID: userID,
		TaskID: c.Query("taskId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateTimeEntry records time for the caller. Omitting endTime starts a timer.
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingFailed(c, err)
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), services.CreateTimeEntryInput{
		TaskID:      req.TaskID,
		UserID:      userID,
		StartTime:   *req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateTimeEntry applies a partial update, typically stopping a timer
func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.TimeEntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BindingFailed(c, err)
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetActiveTimeEntry returns the caller's running entry, or null
func (h *TimeEntryHandler) GetActiveTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.Active(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
