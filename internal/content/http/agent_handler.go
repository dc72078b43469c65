// Package http provides the public and admin endpoints for site content.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexusai/backoffice/internal/content/http/dto"
	"github.com/nexusai/backoffice/internal/content/usecase"
	apperrors "github.com/nexusai/backoffice/internal/errors"
	"github.com/nexusai/backoffice/internal/httputil"
)

// AgentHandler handles agent and prompt-revision requests.
type AgentHandler struct {
	useCase usecase.ContentUseCase
	logger  *slog.Logger
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(useCase usecase.ContentUseCase, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{useCase: useCase, logger: logger}
}

func (h *AgentHandler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httputil.HandleErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid id"),
			h.logger,
		)
		return uuid.Nil, false
	}
	return id, true
}

// ListHandler returns all agents.
// GET /api/agents
func (h *AgentHandler) ListHandler(c *gin.Context) {
	agents, err := h.useCase.ListAgents(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// GetHandler returns a single agent.
// GET /api/agents/:id
func (h *AgentHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	agent, err := h.useCase.GetAgent(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// CreateHandler creates an agent.
// POST /api/agents (admin)
func (h *AgentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	agent, err := h.useCase.CreateAgent(c.Request.Context(), req.ToParams())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// UpdateHandler applies a partial update to an agent.
// PUT /api/agents/:id (admin)
func (h *AgentHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	agent, err := h.useCase.UpdateAgent(c.Request.Context(), id, req.ToParams())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// DeleteHandler removes an agent and its prompt revisions.
// DELETE /api/agents/:id (admin)
func (h *AgentHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteAgent(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPromptsHandler returns all prompt revisions for an agent.
// GET /api/agents/:id/prompts
func (h *AgentHandler) ListPromptsHandler(c *gin.Context) {
	agentID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	prompts, err := h.useCase.ListPrompts(c.Request.Context(), agentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// GetActivePromptHandler returns the agent's active prompt revision.
// GET /api/agents/:id/active-prompt
func (h *AgentHandler) GetActivePromptHandler(c *gin.Context) {
	agentID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	prompt, err := h.useCase.GetActivePrompt(c.Request.Context(), agentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// CreatePromptHandler adds a prompt revision to an agent.
// POST /api/agents/:id/prompts (admin)
func (h *AgentHandler) CreatePromptHandler(c *gin.Context) {
	agentID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	prompt, err := h.useCase.CreatePrompt(c.Request.Context(), agentID, req.ToParams())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

// UpdatePromptHandler applies a partial update to a prompt revision.
// PUT /api/agent-prompts/:id (admin)
func (h *AgentHandler) UpdatePromptHandler(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	prompt, err := h.useCase.UpdatePrompt(c.Request.Context(), id, req.ToParams())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// DeletePromptHandler removes a prompt revision.
// DELETE /api/agent-prompts/:id (admin)
func (h *AgentHandler) DeletePromptHandler(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeletePrompt(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}
