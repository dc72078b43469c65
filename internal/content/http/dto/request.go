// Package dto provides data transfer objects for the content endpoints.
package dto

import (
	"github.com/nexusai/backoffice/internal/content/usecase"
)

// CreateAgentRequest carries the fields for a new agent.
type CreateAgentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ToParams maps the request to usecase parameters.
func (r *CreateAgentRequest) ToParams() usecase.CreateAgentParams {
	return usecase.CreateAgentParams{
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
	}
}

// UpdateAgentRequest carries a partial agent update; omitted fields keep
// their stored values.
type UpdateAgentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// ToParams maps the request to usecase parameters.
func (r *UpdateAgentRequest) ToParams() usecase.UpdateAgentParams {
	return usecase.UpdateAgentParams{
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
	}
}

// CreatePromptRequest carries the fields for a new prompt revision.
type CreatePromptRequest struct {
	Prompt   string `json:"prompt"`
	IsActive bool   `json:"isActive"`
}

// ToParams maps the request to usecase parameters.
func (r *CreatePromptRequest) ToParams() usecase.CreatePromptParams {
	return usecase.CreatePromptParams{
		Prompt:   r.Prompt,
		IsActive: r.IsActive,
	}
}

// UpdatePromptRequest carries a partial prompt update; omitted fields keep
// their stored values.
type UpdatePromptRequest struct {
	Prompt   *string `json:"prompt"`
	IsActive *bool   `json:"isActive"`
}

// ToParams maps the request to usecase parameters.
func (r *UpdatePromptRequest) ToParams() usecase.UpdatePromptParams {
	return usecase.UpdatePromptParams{
		Prompt:   r.Prompt,
		IsActive: r.IsActive,
	}
}
