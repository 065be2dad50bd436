package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xiaot623/council/internal/council"
	"github.com/xiaot623/council/internal/domain"
	"github.com/xiaot623/council/internal/service"
)

// SubmitQuery puts a query to the council and returns the full deliberation.
// POST /v1/conversations/:conversation_id/query
func (h *Handler) SubmitQuery(c echo.Context) error {
	conversationID := c.Param("conversation_id")

	var req domain.QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	ctx := c.Request().Context()

	resp, err := h.service.SubmitQuery(ctx, conversationID, req)
	if err != nil {
		var stageErr *council.StageError
		switch {
		case errors.Is(err, service.ErrBlocked):
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.As(err, &stageErr):
			// Stage-fatal: surface the partial deliberation alongside the error.
			return c.JSON(http.StatusBadGateway, map[string]interface{}{
				"error":        stageErr.Error(),
				"failed_stage": stageErr.Stage,
				"deliberation": stageErr.Deliberation,
			})
		case errors.Is(err, service.ErrConversationNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, resp)
}
