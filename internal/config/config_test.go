package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("API_KEYS", "")
	t.Setenv("CONTENT_API_URL", "")
	t.Setenv("CONTENT_PAGE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "admin", cfg.APIKeys["admin-key-123"])
	assert.Equal(t, "http://localhost:1337", cfg.Content.BaseURL)
	assert.Equal(t, "children", cfg.Content.Collection)
	assert.Equal(t, 1000, cfg.Content.PageSize)
}

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "two pairs with spaces",
			input: " alice:k1 , bob:k2 ",
			want:  map[string]string{"k1": "alice", "k2": "bob"},
		},
		{
			name:  "trailing comma ignored",
			input: "alice:k1,",
			want:  map[string]string{"k1": "alice"},
		},
		{
			name:    "missing separator",
			input:   "alice",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   "alice:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAPIKeys(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentApplyEnv_RejectsBadPageSize(t *testing.T) {
	t.Setenv("CONTENT_PAGE_SIZE", "zero")

	c := DefaultContent()
	err := c.ApplyEnv()
	require.Error(t, err)
}

func TestContentValidate(t *testing.T) {
	assert.NoError(t, DefaultContent().Validate())

	c := DefaultContent()
	c.PageSize = 0
	assert.Error(t, c.Validate())

	c = DefaultContent()
	c.BaseURL = " "
	assert.Error(t, c.Validate())
}

func TestLoadScanner_FileThenEnv(t *testing.T) {
	t.Setenv("CONTENT_API_URL", "")
	t.Setenv("CONTENT_PAGE_SIZE", "250")

	path := filepath.Join(t.TempDir(), "dupscan.yaml")
	content := `content:
  base_url: https://cms.example.org
  collection: sponsees
  page_size: 50
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadScanner(path)
	require.NoError(t, err)

	assert.Equal(t, "https://cms.example.org", cfg.Content.BaseURL)
	assert.Equal(t, "sponsees", cfg.Content.Collection)
	assert.Equal(t, 250, cfg.Content.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadScanner_NoFile(t *testing.T) {
	t.Setenv("CONTENT_PAGE_SIZE", "")

	cfg, err := LoadScanner("")
	require.NoError(t, err)
	assert.Equal(t, DefaultContent().PageSize, cfg.Content.PageSize)

	_, err = LoadScanner(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
