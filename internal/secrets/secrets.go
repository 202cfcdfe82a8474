// Package secrets looks up service credentials behind a narrow interface so
// the pipeline never reads the process environment directly.
package secrets

import (
	"os"
	"strings"
)

// SunoAPIKey is the secret name holding the Suno API credential.
const SunoAPIKey = "SUNO_API_KEY"

// Store resolves named secrets. The boolean reports presence; an absent
// credential is a configuration error the caller surfaces before any network
// call.
type Store interface {
	Get(name string) (string, bool)
}

// EnvStore resolves secrets from environment variables.
type EnvStore struct{}

// Get implements Store.
func (EnvStore) Get(name string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(name))
	return value, value != ""
}
