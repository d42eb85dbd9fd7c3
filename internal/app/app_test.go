package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"career-insights/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `Job Title,State,City,Average Salary,Skill
Data Scientist,CA,San Francisco,120000,"['Python', 'SQL']"
Data Scientist,NY,New York,,['Python']
Data Analyst,CA,San Jose,80000,"['SQL', 'Excel']"
`

func testConfig(t *testing.T) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cleaned_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o600))

	return config.Config{
		App:  config.AppConfig{AppName: "career-insights", Environment: "test", HTTPPort: "8080"},
		Data: config.DataConfig{Source: config.DataSourceCSV, CSVPath: path},
		View: config.ViewConfig{MaxLimit: 20},
	}
}

func get(t *testing.T, a *App, target string) (int, string) {
	t.Helper()

	resp, err := a.Fiber.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestBootstrap_CSV(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	status, body := get(t, a, "/health")
	require.Equal(t, 200, status)

	var health struct {
		Data struct {
			Records int    `json:"records"`
			Source  string `json:"source"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, 3, health.Data.Records)
	assert.Equal(t, "csv", health.Data.Source)

	status, body = get(t, a, "/api/v1/views/top-skills?job_title=Data%20Scientist")
	require.Equal(t, 200, status)
	assert.Contains(t, body, `"title":"Top Skills for Data Scientist"`)

	status, body = get(t, a, "/metrics")
	require.Equal(t, 200, status)
	assert.Contains(t, body, "dashboard_dataset_records 3")
	assert.Contains(t, body, `dashboard_view_compute_seconds_count{view="top-skills"} 1`)
	assert.True(t, strings.Contains(body, `path="/api/v1/views/top-skills"`))
}

func TestBootstrap_MissingCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.CSVPath = filepath.Join(t.TempDir(), "missing.csv")

	_, _, err := Bootstrap(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestBootstrap_NonFiniteSalaryFailsLoad(t *testing.T) {
	cfg := testConfig(t)
	bad := fixtureCSV + "Data Engineer,WA,Seattle,inf,['Go']\n"
	require.NoError(t, os.WriteFile(cfg.Data.CSVPath, []byte(bad), 0o600))

	_, _, err := Bootstrap(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid salary")
}

func TestBootstrap_UnknownSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Source = "s3"

	_, _, err := Bootstrap(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported data source")
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	require.Error(t, err)
}
