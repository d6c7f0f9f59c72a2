// Package identitykit provides a client for the Identity Toolkit REST API,
// the external identity provider used in production.
package identitykit

import "time"

// Config holds configuration for the Identity Toolkit client.
type Config struct {
	APIKey  string        // API key appended to every request
	BaseURL string        // Base URL, e.g. "https://identitytoolkit.googleapis.com/v1"
	Timeout time.Duration // HTTP request timeout
}
