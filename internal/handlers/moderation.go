package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/store"
)

type ModerationHandler struct {
	store *store.Store
}

func NewModerationHandler(st *store.Store) *ModerationHandler {
	return &ModerationHandler{store: st}
}

// GetPending returns the unmoderated items across all content kinds.
func (h *ModerationHandler) GetPending(c *gin.Context) {
	items, err := h.store.PendingQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// GetAll returns the queue partitioned by status, approved/rejected capped
// at the 50 most recent items each.
func (h *ModerationHandler) GetAll(c *gin.Context) {
	overview, err := h.store.QueueOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

type moderationInput struct {
	Action string `json:"action"`
	ItemID string `json:"itemId"`
	Type   string `json:"type"`
}

// Moderate handles the approve/reject dashboard endpoint.
func (h *ModerationHandler) Moderate(c *gin.Context) {
	var input moderationInput
	if err := c.ShouldBindJSON(&input); err != nil || input.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action e itemId son obligatorios"})
		return
	}

	action := store.Action(input.Action)
	if action != store.ActionApprove && action != store.ActionReject {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidAction.Error()})
		return
	}

	if err := h.store.Moderate(c.Request.Context(), input.ItemID, input.Type, action); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Acción de moderación aplicada"})
}

// Action handles the kind-resolving endpoint that additionally supports
// delete, plus the declared-but-unimplemented edit.
func (h *ModerationHandler) Action(c *gin.Context) {
	var input moderationInput
	if err := c.ShouldBindJSON(&input); err != nil || input.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action e itemId son obligatorios"})
		return
	}

	if err := h.store.Moderate(c.Request.Context(), input.ItemID, input.Type, store.Action(input.Action)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Acción de moderación aplicada"})
}

// Purge hard-deletes a post and all of its comments and replies. Guarded by
// the admin bearer token at the router.
func (h *ModerationHandler) Purge(c *gin.Context) {
	var input struct {
		PostID string `json:"postId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId es obligatorio"})
		return
	}

	if err := h.store.PurgePost(c.Request.Context(), input.PostID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Publicación purgada permanentemente"})
}
