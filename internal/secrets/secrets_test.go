package secrets

import "testing"

func TestEnvStoreGet(t *testing.T) {
	t.Setenv("SUNO_API_KEY", "  key-value  ")

	var store Store = EnvStore{}
	value, ok := store.Get(SunoAPIKey)
	if !ok {
		t.Fatalf("expected key to be present")
	}
	if value != "key-value" {
		t.Fatalf("expected trimmed value, got %q", value)
	}
}

func TestEnvStoreGetAbsent(t *testing.T) {
	t.Setenv("SUNO_API_KEY", "")

	if _, ok := (EnvStore{}).Get(SunoAPIKey); ok {
		t.Fatalf("expected absent key")
	}
}
