package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/jurisflow/jurisflow/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing
type MockHTTPClient struct {
	mu     sync.RWMutex
	routes map[string]MockResponse
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a given URL suffix
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = resp
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for route, resp := range m.routes {
		if strings.HasSuffix(req.URL, route) {
			return &httpclient.Response{
				StatusCode: resp.StatusCode,
				Body:       resp.Body,
				Headers:    resp.Headers,
			}, nil
		}
	}

	return &httpclient.Response{
		StatusCode: http.StatusNotFound,
		Body:       []byte("Not Found"),
		Headers:    map[string]string{},
	}, nil
}

// Clear removes all registered responses
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
}
