package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/tasks"}},
	}
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourceOverridesEarlier(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		minimalConfig(),
		&StructuredConfig{App: App{TokenIssuer: "from-env"}},
		&StructuredConfig{App: App{TokenIssuer: "from-json"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-json", cfg.App.TokenIssuer)
	assert.Equal(t, "secret", cfg.App.TokenSignKey, "zero fields must not override")
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, time.Duration(0), cfg.App.TokenTTL, "tokens do not expire by default")
	assert.Equal(t, int64(defaultAvatarMaxBytes), cfg.App.AvatarMaxBytes)
	assert.Equal(t, uint64(defaultTasksMaxPageSize), cfg.App.TasksMaxPageSize)
	assert.Equal(t, uint32(defaultArgon2MemoryKiB), cfg.App.Argon2.MemoryKiB)
	assert.Equal(t, defaultNotificationWorkers, cfg.Workers.NotificationWorkers)
	assert.Equal(t, defaultNotificationQueueSize, cfg.Workers.NotificationQueueSize)
	assert.Equal(t, defaultCacheTTL, cfg.Storage.Cache.TTL)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative token TTL",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenTTL = -time.Second },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative workers",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.NotificationWorkers = -1 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.setDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── env ───────────────────────────────────────────────────────────────────────

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("APP_TOKEN_TTL", "720h")
	t.Setenv("APP_TASKS_MAX_PAGE_SIZE", "50")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/db")
	t.Setenv("STORAGE_CACHE_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("ADAPTER_MAIL_BASE_URL", "https://mail.example.com")
	t.Setenv("WORKERS_NOTIFICATION_WORKERS", "3")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, 720*time.Hour, cfg.App.TokenTTL)
	assert.Equal(t, uint64(50), cfg.App.TasksMaxPageSize)
	assert.Equal(t, "postgres://env/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Cache.RedisAddress)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "https://mail.example.com", cfg.Adapter.Mail.BaseURL)
	assert.Equal(t, 3, cfg.Workers.NotificationWorkers)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_TTL", "forever")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

// ── flags ─────────────────────────────────────────────────────────────────────

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-a", "localhost:8081",
		"-d", "postgres://flags/db",
		"-token-sign-key", "flag-key",
		"-token-ttl", "1h",
		"-config", "/tmp/cfg.json",
		"-redis-address", "redis:6379",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://flags/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "flag-key", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenTTL)
	assert.Equal(t, "/tmp/cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "redis:6379", cfg.Storage.Cache.RedisAddress)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip", input: "127.0.0.1:80", want: "127.0.0.1:80"},
		{name: "all interfaces", input: ":8080", want: ":8080"},
		{name: "ipv6", input: "[::1]:8080", want: "[::1]:8080"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "port not a number", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "bad host", input: "not-an-ip:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

// ── json ──────────────────────────────────────────────────────────────────────

func TestParseJSON(t *testing.T) {
	path := writeTempJSONConfig(t, `{
		"app": {"token_sign_key": "json-key", "token_ttl": "2h", "avatar_max_bytes": 2048},
		"storage": {"db": {"dsn": "postgres://json/db"}, "cache": {"ttl": 60000000000}},
		"server": {"http_address": ":7000", "request_timeout": "5s"},
		"adapter": {"mail": {"base_url": "https://mail", "sender": "noreply@example.com"}},
		"workers": {"notification_queue_size": 10}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-key", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenTTL)
	assert.Equal(t, int64(2048), cfg.App.AvatarMaxBytes)
	assert.Equal(t, "postgres://json/db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Storage.Cache.TTL)
	assert.Equal(t, ":7000", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "noreply@example.com", cfg.Adapter.Mail.Sender)
	assert.Equal(t, 10, cfg.Workers.NotificationQueueSize)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := parseJSON("/definitely/not/here.json")
	assert.Error(t, err)

	_, err = parseJSON(writeTempJSONConfig(t, `{"app": `))
	assert.Error(t, err)

	_, err = parseJSON(writeTempJSONConfig(t, `{"app": {"token_ttl": "soon"}}`))
	assert.Error(t, err)
}

func TestWithJSON_UsesPathFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, `{"app": {"token_issuer": "json-issuer"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig(), &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
