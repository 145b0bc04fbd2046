package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearCmd_Use(t *testing.T) {
	assert.Equal(t, "clear", clearCmd.Use)
}

func TestClearCmd_RequiresForce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestClearCmd_ExecutesWithForce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"clear", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		clearForce = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Index cleared.")
}

func TestClearCmd_ServiceNotConfigured(t *testing.T) {
	oldService := indexService
	indexService = nil
	defer func() {
		indexService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"clear", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		clearForce = false
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}

func TestClearCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexService = &mockIndexServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"clear", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		clearForce = false
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear index")
}
