package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmarquesini/card-arena/internal/constants"
	"github.com/tmarquesini/card-arena/internal/logging"
	"github.com/tmarquesini/card-arena/internal/storage"
)

// ListBattles returns a page of stored battle records, newest first.
// Supports ?page=N and ?limit=N.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	page := 1
	if s := c.Query("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page = n
		}
	}
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	out, err := h.repo.GetBattles(page, limit)
	if err != nil {
		logging.Error("failed to list battles", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns one battle record by ID.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := c.Param("battleID")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	rec, err := h.repo.GetBattleByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrBattleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		logging.Error("failed to fetch battle", err, logging.Fields{constants.LogFieldBattleID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteBattle removes one battle record by ID.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	id := c.Param("battleID")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	if err := h.repo.DeleteBattle(id); err != nil {
		logging.Error("failed to delete battle", err, logging.Fields{constants.LogFieldBattleID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedDeleteBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "deleted"})
}
