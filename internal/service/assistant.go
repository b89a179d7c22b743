package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/httpclient"
	"github.com/jurisflow/jurisflow/internal/types"
)

// AssistantService proxies prompts to the configured AI backend. The
// backend speaks the chat completions wire format.
type AssistantService interface {
	Ask(ctx context.Context, req *dto.AssistantRequest) (*dto.AssistantResponse, error)
}

type assistantService struct {
	ServiceParams
}

func NewAssistantService(params ServiceParams) AssistantService {
	return &assistantService{ServiceParams: params}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const assistantSystemPrompt = "You are a legal practice assistant for a law office in Niger. " +
	"Answer in the language of the question. Never invent case law or statutes."

func (s *assistantService) Ask(ctx context.Context, req *dto.AssistantRequest) (*dto.AssistantResponse, error) {
	if !s.Config.Assistant.Enabled {
		return nil, ierr.NewError("assistant is not enabled").
			WithHint("The AI assistant is not enabled for this deployment").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.Limiter.Allow(ctx, types.GetUserID(ctx), types.RateLimitCategoryAI); err != nil {
		return nil, err
	}

	messages := []chatMessage{
		{Role: "system", Content: assistantSystemPrompt},
	}

	if req.MatterID != "" {
		m, err := s.MatterRepo.GetByID(ctx, req.MatterID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: fmt.Sprintf("Context: matter %s (%s), status %s.", m.Reference, m.Title, m.MatterStatus),
		})
	}

	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(chatCompletionRequest{
		Model:    s.Config.Assistant.Model,
		Messages: messages,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build assistant request").
			Mark(ierr.ErrSystem)
	}

	if s.Config.Assistant.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.Config.Assistant.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	resp, err := s.Client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    s.Config.Assistant.BaseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + s.Config.Assistant.APIKey,
		},
		Body: payload,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The assistant is temporarily unavailable").
			Mark(ierr.ErrHTTPClient)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(resp.Body, &completion); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The assistant returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}
	if len(completion.Choices) == 0 {
		return nil, ierr.NewError("assistant returned no choices").
			WithHint("The assistant returned an empty response").
			Mark(ierr.ErrHTTPClient)
	}

	return &dto.AssistantResponse{
		Reply: completion.Choices[0].Message.Content,
		Model: completion.Model,
	}, nil
}
