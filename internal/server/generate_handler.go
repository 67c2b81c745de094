package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptbench/internal/services"
)

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateReq
	if !bind(c, &req) {
		return
	}
	out, err := h.generation.GenerateCandidates(c.Request.Context(), services.CandidateRequest{
		Count:        req.Count,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		UserID:       currentUser(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
