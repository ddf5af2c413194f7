package httpclient

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
)

const apiKeyHeader = "X-Api-Key"

// Credential authenticates outgoing requests.
type Credential interface {
	Apply(h http.Header) error
}

// APIKeyCredential sends the account API key in X-Api-Key.
type APIKeyCredential struct {
	key string
}

func NewAPIKeyCredential(key string) (*APIKeyCredential, error) {
	if err := apierror.Validate("api_key", key, validation.Required.Error("API key cannot be empty")); err != nil {
		return nil, err
	}
	return &APIKeyCredential{key: key}, nil
}

func (c *APIKeyCredential) Apply(h http.Header) error {
	if c == nil || c.key == "" {
		return apierror.ErrMissingCredential
	}
	h.Set(apiKeyHeader, c.key)
	return nil
}
