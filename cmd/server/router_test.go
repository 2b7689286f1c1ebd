package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/knownissues-api/internal/api"
	"github.com/phrazzld/knownissues-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
}

func newTestServer(t *testing.T, app *application) *testClient {
	t.Helper()

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return &testClient{t: t, server: server}
}

func (c *testClient) do(method, path, body string) (*http.Response, string) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(data)
}

func (c *testClient) list() []api.KnownIssueResponse {
	c.t.Helper()

	resp, body := c.do(http.MethodGet, "/known-issues", "")
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var issues []api.KnownIssueResponse
	require.NoError(c.t, json.Unmarshal([]byte(body), &issues))
	return issues
}

// TestKnownIssuesScenario walks the create/list/delete/list/delete sequence.
func TestKnownIssuesScenario(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	before := time.Now().UTC().Add(-time.Minute)

	resp, body := client.do(http.MethodPost, "/known-issues", `{"regex":"foo.*bar"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var created api.KnownIssueResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "foo.*bar", created.RegexPattern)
	assert.True(t, created.CreatedAt.After(before), "created_at assigned at insert")

	listed := client.list()
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "foo.*bar", listed[0].RegexPattern)
	assert.True(t, created.CreatedAt.Equal(listed[0].CreatedAt))

	resp, body = client.do(http.MethodDelete, "/known-issues/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = client.do(http.MethodGet, "/known-issues", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = client.do(http.MethodDelete, "/known-issues/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody shared.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &errBody))
	assert.Equal(t, "Known issue not found", errBody.Error)
	assert.Equal(t, resp.Header.Get(shared.TraceIDHeader), errBody.TraceID)
}

func TestCreateValidation(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	for _, body := range []string{`{}`, `{"regex":""}`, `{"regex":null}`, `{"regex":7}`, `{"regex":`} {
		resp, _ := client.do(http.MethodPost, "/known-issues", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
	}

	assert.Empty(t, client.list(), "invalid input never adds a record")
	assert.Zero(t, countRows(t, app.db))
}

func TestIDsAreNeverReused(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	seen := map[int64]bool{}
	for i := 0; i < 3; i++ {
		resp, body := client.do(http.MethodPost, "/known-issues", fmt.Sprintf(`{"regex":"p%d"}`, i))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var created api.KnownIssueResponse
		require.NoError(t, json.Unmarshal([]byte(body), &created))
		seen[created.ID] = true
	}

	// Delete the newest record, then create again.
	resp, _ := client.do(http.MethodDelete, "/known-issues/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := client.do(http.MethodPost, "/known-issues", `{"regex":"again"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created api.KnownIssueResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.False(t, seen[created.ID], "id %d was handed out before", created.ID)

	listed := client.list()
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.Less(t, listed[i-1].ID, listed[i].ID, "list follows insertion order")
	}
}

func TestConcurrentCreates(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPost, client.server.URL+"/known-issues",
				strings.NewReader(fmt.Sprintf(`{"regex":"concurrent-%d"}`, i)))
			if !assert.NoError(t, err) {
				return
			}
			resp, err := client.server.Client().Do(req)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			var created api.KnownIssueResponse
			if assert.Equal(t, http.StatusCreated, resp.StatusCode) &&
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created)) {
				ids <- created.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	unique := map[int64]bool{}
	for id := range ids {
		unique[id] = true
	}
	assert.Len(t, unique, n)
	assert.Len(t, client.list(), n)
}

func TestDeleteBadID(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	for _, id := range []string{"abc", "1.5", "9223372036854775808"} {
		resp, body := client.do(http.MethodDelete, "/known-issues/"+id, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id %q", id)
		assert.Contains(t, body, "Invalid known issue ID")
	}
}

func TestDeleteNeverCreatedID(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	resp, _ := client.do(http.MethodPost, "/known-issues", `{"regex":"keep"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, id := range []string{"0", "-1", "999"} {
		resp, body := client.do(http.MethodDelete, "/known-issues/"+id, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "id %q", id)
		assert.Contains(t, body, "Known issue not found")
	}

	issues := client.list()
	require.Len(t, issues, 1)
	assert.Equal(t, "keep", issues[0].RegexPattern)
}

func TestTrailingSlash(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	resp, body := client.do(http.MethodGet, "/known-issues/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)
}

func TestCORSHeaders(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	req, err := http.NewRequest(http.MethodGet, client.server.URL+"/known-issues", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8080")
	resp, err := client.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	preflight, err := http.NewRequest(http.MethodOptions, client.server.URL+"/known-issues/1", nil)
	require.NoError(t, err)
	preflight.Header.Set("Origin", "http://localhost:8080")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	resp, err = client.server.Client().Do(preflight)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestTraceIDHeader(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	resp, _ := client.do(http.MethodGet, "/known-issues", "")
	_, err := uuid.Parse(resp.Header.Get(shared.TraceIDHeader))
	assert.NoError(t, err)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	resp, body := client.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	require.NoError(t, app.db.Close())

	resp, _ = client.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestStorageFailureIsServerError(t *testing.T) {
	app, logBuf := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	require.NoError(t, app.db.Close())

	resp, body := client.do(http.MethodGet, "/known-issues", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "sql")

	resp, _ = client.do(http.MethodPost, "/known-issues", `{"regex":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	assert.Contains(t, logBuf.String(), `"level":"ERROR"`)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApplication(t, testConfig(t))
	client := newTestServer(t, app)

	resp, _ := client.do(http.MethodPost, "/known-issues", `{"regex":"m"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = client.do(http.MethodDelete, "/known-issues/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := client.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "knownissues_created_total 1")
	assert.Contains(t, body, "knownissues_deleted_total 1")
	assert.Contains(t, body, `http_requests_total{method="DELETE",route="/known-issues/{id}",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	app, _ := newTestApplication(t, cfg)
	client := newTestServer(t, app)

	resp, _ := client.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = client.do(http.MethodPost, "/known-issues", `{"regex":"still works"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
