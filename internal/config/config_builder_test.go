package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func testBuilder() *configBuilder {
	b := newConfigBuilder()
	b.args = nil
	return b
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := testBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceOverrides verifies that a later non-zero value wins
// and zero values never erase earlier ones.
func TestBuild_LaterSourceOverrides(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "env", Version: "1.0.0"}},
		&StructuredConfig{App: App{TokenIssuer: "flag"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_AppliesDefaults(t *testing.T) {
	b := testBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)

	got := b.configs[0]
	assert.Equal(t, ":5000", got.Server.HTTPAddress)
	assert.Equal(t, 168*time.Hour, got.App.TokenDuration)
	assert.Equal(t, 10, got.App.PasswordHashCost)
	assert.Equal(t, "localhost:5000", got.Adapter.HTTPAddress)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("APP_TOKEN_DURATION", "1h")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/db")
	t.Setenv("STORAGE_CACHE_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SERVER_ADDRESS", ":8080")

	b := testBuilder().withEnv()
	require.NoError(t, b.err)

	got := b.configs[0]
	assert.Equal(t, "secret", got.App.TokenSignKey)
	assert.Equal(t, time.Hour, got.App.TokenDuration)
	assert.Equal(t, "postgres://u:p@localhost/db", got.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", got.Storage.Cache.RedisAddress)
	assert.Equal(t, ":8080", got.Server.HTTPAddress)
}

func TestWithEnv_InvalidValue(t *testing.T) {
	t.Setenv("APP_PASSWORD_HASH_COST", "not-a-number")

	b := testBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ParsesArgs(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-a", "127.0.0.1:9000", "-d", "dsn", "-token-sign-key", "k", "-hash-cost", "12"}
	b.withFlags()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "127.0.0.1:9000", b.configs[0].Server.HTTPAddress)
	assert.Equal(t, "dsn", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, "k", b.configs[0].App.TokenSignKey)
	assert.Equal(t, 12, b.configs[0].App.PasswordHashCost)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-unknown"}
	b.withFlags()

	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.TokenIssuer = "json-issuer"
	payload.App.TokenDuration = Duration(2 * time.Hour)
	payload.Storage.Cache.TTL = Duration(time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, b.configs[1].App.TokenDuration)
	assert.Equal(t, time.Minute, b.configs[1].Storage.Cache.TTL)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── Duration ──────────────────────────────────────────────────────────────────

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"30s"`, want: 30 * time.Second},
		{name: "number", input: `1000`, want: time.Microsecond},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
