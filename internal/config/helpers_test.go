package config

import (
	"os"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

// unsetOnCleanup removes a variable that godotenv set behind t.Setenv's back.
func unsetOnCleanup(t *testing.T, key string) {
	t.Cleanup(func() { os.Unsetenv(key) })
}
