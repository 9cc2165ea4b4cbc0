package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncHandler serves the per-user profile and workout-log store plus the
// shared exercise library — the endpoints the client's sync engine consumes.
type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// GetProfile returns the authenticated user's profile, 404 when none exists
// yet (a fresh account that never pushed).
func (h *SyncHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.syncService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "No profile stored for this user")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile overwrites the authenticated user's profile.
func (h *SyncHandler) PutProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.syncService.SaveProfile(c.Request.Context(), userID, &profile); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetWorkoutLogs returns all of the user's logs, newest first.
func (h *SyncHandler) GetWorkoutLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	logs, err := h.syncService.GetWorkoutLogs(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// PutWorkoutLog upserts one log under the id in the path. The body's id must
// match the path; the path wins on mismatch.
func (h *SyncHandler) PutWorkoutLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var log domain.WorkoutLog
	if err := c.ShouldBindJSON(&log); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	log.ID = c.Param("id")

	if err := h.syncService.SaveWorkoutLog(c.Request.Context(), userID, &log); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save workout log")
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteWorkoutLog removes one log. Deleting an unknown id still returns 204:
// the client retries deletes and expects idempotency.
func (h *SyncHandler) DeleteWorkoutLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.syncService.DeleteWorkoutLog(c.Request.Context(), userID, c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete workout log")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetExercises returns the shared exercise library.
func (h *SyncHandler) GetExercises(c *gin.Context) {
	exercises, err := h.syncService.GetExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}
