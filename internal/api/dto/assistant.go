package dto

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
)

type AssistantRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	// MatterID scopes the conversation to a matter so its reference and
	// title can be included as context
	MatterID string `json:"matter_id,omitempty"`
}

func (r *AssistantRequest) Validate() error {
	if r.Prompt == "" {
		return ierr.NewError("prompt is required").
			WithHint("Prompt cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type AssistantResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model,omitempty"`
}
