package config

// AssistantConfig configures the drafting assistant backend.
// When Enabled is false the assistant endpoints return invalid operation.
type AssistantConfig struct {
	Enabled        bool
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}
