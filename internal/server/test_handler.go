package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"promptbench/internal/models"
	"promptbench/internal/services"
)

func (h *Handler) CreateTest(c *gin.Context) {
	var req CreateTestReq
	if !bind(c, &req) {
		return
	}
	id, err := h.tests.CreateTest(c.Request.Context(), req.toService(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IDResult{ID: id})
}

func (h *Handler) ListTests(c *gin.Context) {
	list, err := h.tests.ListTests(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(list, func(s models.TestSummary, _ int) TestSummaryVO {
		return TestSummaryVO{
			ID:           s.ID,
			Name:         s.Name,
			SystemPrompt: s.SystemPrompt,
			CreatedAt:    s.CreatedAt,
			MessageCount: s.MessageCount,
		}
	}))
}

func (h *Handler) GetTest(c *gin.Context) {
	test, err := h.tests.GetTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTestVO(test, h.models))
}

func (h *Handler) DeleteTest(c *gin.Context) {
	if err := h.tests.DeleteTest(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResult{Success: true})
}

func (h *Handler) AddModelTest(c *gin.Context) {
	var req AddModelTestReq
	if !bind(c, &req) {
		return
	}
	id, err := h.tests.AddModelTest(c.Request.Context(), services.AddModelTestRequest{
		TestID:      c.Param("id"),
		Model:       req.Model,
		Temperature: req.Temperature,
	}, currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IDResult{ID: id})
}

func (h *Handler) AddMessage(c *gin.Context) {
	var req AddMessageReq
	if !bind(c, &req) {
		return
	}
	msg, resp, err := h.tests.AddMessage(c.Request.Context(), c.Param("id"), req.Content, currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AddMessageResult{Message: newMessageVO(*msg), Response: newResponseVO(*resp)})
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.tests.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResult{Success: true})
}

func (h *Handler) SetMessageIncluded(c *gin.Context) {
	var req SetIncludedReq
	if !bind(c, &req) {
		return
	}
	if err := h.tests.SetMessageIncluded(c.Request.Context(), c.Param("id"), *req.Included); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResult{Success: true})
}

func (h *Handler) UpdateResponse(c *gin.Context) {
	var req UpdateResponseReq
	if !bind(c, &req) {
		return
	}
	updated, err := h.tests.UpdateResponse(c.Request.Context(), services.UpdateResponseRequest{
		ResponseID: req.ResponseID,
		Rating:     (*models.Rating)(req.Rating),
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newResponseVO(*updated))
}
