package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/PratikDhanave/sponsorship-service/internal/content"
)

const childrenJSON = `{"data":[
	{"id":1,"attributes":{"firstName":"Jane","lastName":"Doe","createdAt":"2024-01-01T00:00:00.000Z"}},
	{"id":2,"attributes":{"firstName":"jane","lastName":"doe","createdAt":"2024-02-01T00:00:00.000Z"}},
	{"id":3,"attributes":{"firstName":"Kofi","lastName":"Mensah"}}
]}`

func cmsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONTENT_API_URL", "")
	t.Setenv("CONTENT_PAGE_SIZE", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScan_TextReport(t *testing.T) {
	srv := cmsServer(t, childrenJSON)

	out, err := execute(t, "--url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Total records found: 3")
	assert.Contains(t, out, "Found 1 potential duplicates")
	assert.Contains(t, out, `1. Duplicate name: "jane doe"`)
	assert.Contains(t, out, "1. ID: 1, Created: 2024-01-01T00:00:00.000Z")
	assert.Contains(t, out, "2. ID: 2, Created: 2024-02-01T00:00:00.000Z")
	assert.NotContains(t, out, "Warning")
}

func TestScan_JSONReportWithTruncation(t *testing.T) {
	srv := cmsServer(t, childrenJSON)

	out, err := execute(t, "--url", srv.URL, "--page-size", "3", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(3), gjson.Get(out, "total").Int())
	assert.True(t, gjson.Get(out, "truncated").Bool())
	assert.Equal(t, "1", gjson.Get(out, "duplicates.0.original.id").String())
	assert.Equal(t, "2", gjson.Get(out, "duplicates.0.duplicate.id").String())
}

func TestScan_NoCollection(t *testing.T) {
	srv := cmsServer(t, `{}`)

	out, err := execute(t, "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Total records found: 0")
	assert.Contains(t, out, "No duplicate names found.")
}

func TestScan_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	out, err := execute(t, "--url", srv.URL)
	require.Error(t, err)
	assert.Empty(t, out)

	var fe *content.FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), "is the content API running")
}

func TestScan_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "--format", "xml")
	require.Error(t, err)

	_, err = execute(t, "--page-size", "0")
	require.Error(t, err)

	_, err = execute(t, "extra-arg")
	require.Error(t, err)
}
