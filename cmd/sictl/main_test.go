package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fyrsmithlabs/socialintel/internal/config"
	"github.com/fyrsmithlabs/socialintel/internal/content"
	httpserver "github.com/fyrsmithlabs/socialintel/internal/http"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/fyrsmithlabs/socialintel/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCode = "vyudu2024"

func startServer(t *testing.T) (*httptest.Server, *session.Store) {
	t.Helper()
	sessions := session.NewStore(config.Secret(testCode))
	srv, err := httpserver.NewServer(logging.NewNop(), sessions,
		content.NewLoader(filepath.Join("..", "..", "data")), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, sessions
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHealth(t *testing.T) {
	ts, _ := startServer(t)

	out, err := execute(t, "health", "--server", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Server Status:")
	assert.Contains(t, out, "ok")
}

func TestHealth_Unreachable(t *testing.T) {
	_, err := execute(t, "health", "--server", "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestTrends(t *testing.T) {
	ts, sessions := startServer(t)

	out, err := execute(t, "trends", "--server", ts.URL, "--code", testCode)
	require.NoError(t, err)
	assert.Contains(t, out, "Trend Monitor")
	assert.Contains(t, out, "Emotional intelligence in relationships")
	assert.Contains(t, out, "Biggest Gender Gap")
	assert.Zero(t, sessions.Len(), "session should be closed after the command")
}

func TestAttractionAndSkills(t *testing.T) {
	ts, _ := startServer(t)

	out, err := execute(t, "attraction", "--server", ts.URL, "--code", testCode)
	require.NoError(t, err)
	assert.Contains(t, out, "Research Insights")
	assert.Contains(t, out, "/10")

	out, err = execute(t, "skills", "--server", ts.URL, "--code", testCode)
	require.NoError(t, err)
	assert.Contains(t, out, "Communication Tips")
	assert.Contains(t, out, "Interest-Based")
}

func TestView_CodeFromEnv(t *testing.T) {
	ts, _ := startServer(t)
	t.Setenv(accessCodeEnv, testCode)

	_, err := execute(t, "skills", "--server", ts.URL)
	assert.NoError(t, err)
}

func TestView_WrongCode(t *testing.T) {
	ts, _ := startServer(t)

	_, err := execute(t, "trends", "--server", ts.URL, "--code", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestView_MissingCode(t *testing.T) {
	t.Setenv(accessCodeEnv, "")

	_, err := execute(t, "trends", "--server", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access code required")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "--dir", filepath.Join("..", "..", "data"))
	require.NoError(t, err)
	assert.Contains(t, out, "mock_trends")
	assert.Contains(t, out, "social_skills")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mock_trends.json"), []byte("{not json"), 0o600))

	out, err = execute(t, "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 of 3 datasets invalid")
	assert.Contains(t, out, "mock_trends:")
}

func TestBar(t *testing.T) {
	for _, pct := range []int{-5, 0, 50, 100, 150} {
		assert.Equal(t, barWidth, lipgloss.Width(bar(pct, "#FFFFFF")), "pct=%d", pct)
	}
}
