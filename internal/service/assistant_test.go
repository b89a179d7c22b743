package service

import (
	stderrors "github.com/cockroachdb/errors"
	"net/http"
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/config"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AssistantServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    AssistantService
	httpClient *testutil.MockHTTPClient
}

func TestAssistantService(t *testing.T) {
	suite.Run(t, new(AssistantServiceSuite))
}

func (s *AssistantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService(true)
}

func (s *AssistantServiceSuite) setupService(enabled bool) {
	stores := s.GetStores()
	s.httpClient = testutil.NewMockHTTPClient()

	cfg := *s.GetConfig()
	cfg.Assistant = config.AssistantConfig{
		Enabled: enabled,
		BaseURL: "https://assistant.test/v1",
		APIKey:  "sk-test",
		Model:   "test-model",
	}

	s.service = NewAssistantService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     &cfg,
		DB:         s.GetDB(),
		Client:     s.httpClient,
		RBAC:       s.GetRBAC(),
		Limiter:    s.GetLimiter(),
		MatterRepo: stores.MatterRepo,
	})
}

func (s *AssistantServiceSuite) registerCompletion(reply string) {
	s.httpClient.RegisterResponse("/chat/completions", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body: []byte(`{
			"model": "test-model",
			"choices": [{"message": {"role": "assistant", "content": "` + reply + `"}}]
		}`),
	})
}

func (s *AssistantServiceSuite) TestAsk() {
	s.registerCompletion("Le delai d'appel est de deux mois.")

	resp, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{
		Prompt: "Quel est le delai d'appel en matiere civile?",
	})
	s.NoError(err)
	s.Equal("Le delai d'appel est de deux mois.", resp.Reply)
	s.Equal("test-model", resp.Model)
}

func (s *AssistantServiceSuite) TestAskDisabled() {
	s.setupService(false)

	_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{Prompt: "Bonjour"})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *AssistantServiceSuite) TestAskEmptyPrompt() {
	_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AssistantServiceSuite) TestAskUnknownMatter() {
	s.registerCompletion("ok")

	_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{
		Prompt:   "Resume ce dossier",
		MatterID: "matter_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *AssistantServiceSuite) TestAskMalformedBackendResponse() {
	s.httpClient.RegisterResponse("/chat/completions", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"model": "test-model", "choices": []}`),
	})

	_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{Prompt: "Bonjour"})
	s.Error(err)
	s.True(stderrors.Is(err, ierr.ErrHTTPClient))
}

func (s *AssistantServiceSuite) TestAskBudget() {
	s.registerCompletion("ok")

	// The AI budget allows 10 prompts per window
	for i := 0; i < 10; i++ {
		_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{Prompt: "Bonjour"})
		s.NoError(err)
	}

	_, err := s.service.Ask(s.GetContext(), &dto.AssistantRequest{Prompt: "Bonjour"})
	s.Error(err)
	s.True(ierr.IsRateLimited(err))
}
