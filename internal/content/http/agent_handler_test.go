package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/backoffice/internal/content/domain"
	"github.com/nexusai/backoffice/internal/content/usecase"
)

// MockContentUseCase is a mock implementation of ContentUseCase.
type MockContentUseCase struct {
	mock.Mock
}

func (m *MockContentUseCase) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Agent), args.Error(1)
}

func (m *MockContentUseCase) GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockContentUseCase) CreateAgent(
	ctx context.Context,
	params usecase.CreateAgentParams,
) (*domain.Agent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockContentUseCase) UpdateAgent(
	ctx context.Context,
	id uuid.UUID,
	params usecase.UpdateAgentParams,
) (*domain.Agent, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockContentUseCase) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentUseCase) ListPrompts(
	ctx context.Context,
	agentID uuid.UUID,
) ([]*domain.AgentPrompt, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AgentPrompt), args.Error(1)
}

func (m *MockContentUseCase) GetActivePrompt(
	ctx context.Context,
	agentID uuid.UUID,
) (*domain.AgentPrompt, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentPrompt), args.Error(1)
}

func (m *MockContentUseCase) CreatePrompt(
	ctx context.Context,
	agentID uuid.UUID,
	params usecase.CreatePromptParams,
) (*domain.AgentPrompt, error) {
	args := m.Called(ctx, agentID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentPrompt), args.Error(1)
}

func (m *MockContentUseCase) UpdatePrompt(
	ctx context.Context,
	id uuid.UUID,
	params usecase.UpdatePromptParams,
) (*domain.AgentPrompt, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentPrompt), args.Error(1)
}

func (m *MockContentUseCase) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupAgentHandler(t *testing.T) (*AgentHandler, *MockContentUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	uc := &MockContentUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAgentHandler(uc, logger), uc
}

// createTestContext creates a test Gin context with the given request body
// and URL parameters.
func createTestContext(
	method, path string,
	body interface{},
	params gin.Params,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	return c, w
}

func sampleAgent() *domain.Agent {
	return &domain.Agent{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       "Support Agent",
		Description: "Answers customer questions",
		Icon:        "headset",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestAgentHandler_ListHandler(t *testing.T) {
	handler, uc := setupAgentHandler(t)
	agent := sampleAgent()

	uc.On("ListAgents", mock.Anything).Return([]*domain.Agent{agent}, nil).Once()

	c, w := createTestContext(http.MethodGet, "/api/agents", nil, nil)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var agents []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agents))
	require.Len(t, agents, 1)
	assert.Equal(t, "Support Agent", agents[0]["title"])
}

func TestAgentHandler_GetHandler(t *testing.T) {
	t.Run("Success_ReturnsAgent", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		agent := sampleAgent()

		uc.On("GetAgent", mock.Anything, agent.ID).Return(agent, nil).Once()

		c, w := createTestContext(http.MethodGet, "/api/agents/"+agent.ID.String(), nil,
			gin.Params{{Key: "id", Value: agent.ID.String()}})
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), agent.ID.String())
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/agents/42", nil,
			gin.Params{{Key: "id", Value: "42"}})
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "GetAgent", mock.Anything, mock.Anything)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		id := uuid.Must(uuid.NewV7())

		uc.On("GetAgent", mock.Anything, id).Return(nil, domain.ErrAgentNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/api/agents/"+id.String(), nil,
			gin.Params{{Key: "id", Value: id.String()}})
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAgentHandler_CreateHandler(t *testing.T) {
	t.Run("Success_CreatesAgent", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		agent := sampleAgent()

		uc.On("CreateAgent", mock.Anything, usecase.CreateAgentParams{
			Title:       "Support Agent",
			Description: "Answers customer questions",
			Icon:        "headset",
		}).Return(agent, nil).Once()

		c, w := createTestContext(http.MethodPost, "/api/agents", gin.H{
			"title":       "Support Agent",
			"description": "Answers customer questions",
			"icon":        "headset",
		}, nil)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupAgentHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/agents", nil, nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("not json")))
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAgentHandler_UpdateHandler(t *testing.T) {
	handler, uc := setupAgentHandler(t)
	agent := sampleAgent()
	title := "Renamed"

	uc.On("UpdateAgent", mock.Anything, agent.ID, usecase.UpdateAgentParams{Title: &title}).
		Return(agent, nil).
		Once()

	c, w := createTestContext(http.MethodPut, "/api/agents/"+agent.ID.String(), gin.H{
		"title": "Renamed",
	}, gin.Params{{Key: "id", Value: agent.ID.String()}})
	handler.UpdateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestAgentHandler_DeleteHandler(t *testing.T) {
	handler, uc := setupAgentHandler(t)
	id := uuid.Must(uuid.NewV7())

	uc.On("DeleteAgent", mock.Anything, id).Return(nil).Once()

	c, w := createTestContext(http.MethodDelete, "/api/agents/"+id.String(), nil,
		gin.Params{{Key: "id", Value: id.String()}})
	handler.DeleteHandler(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAgentHandler_PromptHandlers(t *testing.T) {
	agentID := uuid.Must(uuid.NewV7())

	samplePrompt := func() *domain.AgentPrompt {
		now := time.Now().UTC()
		return &domain.AgentPrompt{
			ID:        uuid.Must(uuid.NewV7()),
			AgentID:   agentID,
			Prompt:    "You are a helpful assistant.",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	t.Run("Success_CreatePrompt", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		prompt := samplePrompt()

		uc.On("CreatePrompt", mock.Anything, agentID, usecase.CreatePromptParams{
			Prompt:   "You are a helpful assistant.",
			IsActive: true,
		}).Return(prompt, nil).Once()

		c, w := createTestContext(http.MethodPost, "/api/agents/"+agentID.String()+"/prompts", gin.H{
			"prompt":   "You are a helpful assistant.",
			"isActive": true,
		}, gin.Params{{Key: "id", Value: agentID.String()}})
		handler.CreatePromptHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Success_GetActivePrompt", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		prompt := samplePrompt()

		uc.On("GetActivePrompt", mock.Anything, agentID).Return(prompt, nil).Once()

		c, w := createTestContext(http.MethodGet, "/api/agents/"+agentID.String()+"/active-prompt",
			nil, gin.Params{{Key: "id", Value: agentID.String()}})
		handler.GetActivePromptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["isActive"])
	})

	t.Run("Error_NoActivePrompt", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)

		uc.On("GetActivePrompt", mock.Anything, agentID).
			Return(nil, domain.ErrPromptNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/agents/"+agentID.String()+"/active-prompt",
			nil, gin.Params{{Key: "id", Value: agentID.String()}})
		handler.GetActivePromptHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success_UpdatePromptActivation", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		prompt := samplePrompt()
		active := true

		uc.On("UpdatePrompt", mock.Anything, prompt.ID, usecase.UpdatePromptParams{IsActive: &active}).
			Return(prompt, nil).
			Once()

		c, w := createTestContext(http.MethodPut, "/api/agent-prompts/"+prompt.ID.String(), gin.H{
			"isActive": true,
		}, gin.Params{{Key: "id", Value: prompt.ID.String()}})
		handler.UpdatePromptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Success_DeletePrompt", func(t *testing.T) {
		handler, uc := setupAgentHandler(t)
		id := uuid.Must(uuid.NewV7())

		uc.On("DeletePrompt", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/api/agent-prompts/"+id.String(), nil,
			gin.Params{{Key: "id", Value: id.String()}})
		handler.DeletePromptHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
