package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextCmd_Use(t *testing.T) {
	assert.Equal(t, "context", contextCmd.Use)
}

func TestContextCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"context", "--user", "user-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Document Type: resume")
	assert.Contains(t, buf.String(), "Senior Go engineer.")
}

func TestContextCmd_MissingUserFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"context"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--user")
}

func TestContextCmd_ServiceNotConfigured(t *testing.T) {
	oldService := indexService
	indexService = nil
	defer func() {
		indexService = oldService
		userID = ""
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"context", "--user", "user-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}

func TestContextCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexService = &mockIndexServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"context", "--user", "user-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to assemble context")
}
