package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

func parseProvider(raw string) (models.Provider, error) {
	p := models.Provider(raw)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownProvider, raw)
	}
	return p, nil
}

func (h *Handler) KeyStatus(c *gin.Context) {
	status, err := h.apiKeys.Status(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) StoreKey(c *gin.Context) {
	var req StoreKeyReq
	if !bind(c, &req) {
		return
	}
	provider, err := parseProvider(req.Provider)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.apiKeys.StoreKey(c.Request.Context(), currentUser(c), provider, req.Key); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResult{Success: true})
}

func (h *Handler) DeleteKey(c *gin.Context) {
	provider, err := parseProvider(c.Param("provider"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.apiKeys.DeleteKey(c.Request.Context(), currentUser(c), provider); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResult{Success: true})
}
