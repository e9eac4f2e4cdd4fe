package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/analytics"
)

type AnalyticsHandler struct {
	recorder *analytics.Recorder
}

func NewAnalyticsHandler(recorder *analytics.Recorder) *AnalyticsHandler {
	return &AnalyticsHandler{recorder: recorder}
}

// RecordEvent appends an event to the shared ring.
func (h *AnalyticsHandler) RecordEvent(c *gin.Context) {
	var event analytics.Event
	if err := c.ShouldBindJSON(&event); err != nil || event.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El campo type es obligatorio"})
		return
	}

	if err := h.recorder.Record(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evento registrado"})
}

// GetEvents returns the most recent events. Bearer-token guarded at the
// router; reaching here means the caller is authorized.
func (h *AnalyticsHandler) GetEvents(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	events, err := h.recorder.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
