package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testYAML = `
env:
  env: test
  serviceName: taskapi
  log:
    level: debug
http:
  port: 8080
  hideErrorDetails: false
jwt:
  secret: ""
  ttlMs: 60000
auth:
  bcryptCost: 4
tasks:
  maxPageSize: 50
`

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

type testYAMLConfig struct {
	Env struct {
		ServiceName string `yaml:"serviceName"`
	} `yaml:"env"`
	HTTP struct {
		Port             int  `yaml:"port"`
		HideErrorDetails bool `yaml:"hideErrorDetails"`
	} `yaml:"http"`
	JWT  JWTConfig  `yaml:"jwt"`
	Auth AuthConfig `yaml:"auth"`
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	writeConfig(t, testYAML)
	t.Setenv("JWT_SECRET", "env-secret-env-secret-env-secret-env")
	t.Setenv("HTTP_HIDEERRORDETAILS", "true")
	t.Setenv("AUTH_PUBLICPATHS", "/auth/**,/health")

	cfg, err := LoadWithEnv[testYAMLConfig]("test")
	require.NoError(t, err)

	assert.Equal(t, "taskapi", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.HideErrorDetails)
	assert.Equal(t, "env-secret-env-secret-env-secret-env", cfg.JWT.Secret)
	assert.Equal(t, int64(60000), cfg.JWT.TTLMs)
	assert.Equal(t, []string{"/auth/**", "/health"}, cfg.Auth.PublicPaths)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[testYAMLConfig]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 5*time.Second, cfg.Persistence.QueryTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultPublicPaths, cfg.Auth.PublicPaths)
	assert.Equal(t, 10, cfg.Tasks.DefaultPageSize)
	assert.Equal(t, 100, cfg.Tasks.MaxPageSize)

	cfg.Auth.PublicPaths[0] = "/changed"
	assert.Equal(t, "/auth/**", DefaultPublicPaths[0])
}

func TestApplyDefaults_ClampsDefaultPageSize(t *testing.T) {
	cfg := &Config{Tasks: &TasksConfig{DefaultPageSize: 80, MaxPageSize: 20}}
	applyDefaults(cfg)

	assert.Equal(t, 20, cfg.Tasks.DefaultPageSize)
}

func TestConfig_Validate(t *testing.T) {
	validSecret := strings.Repeat("k", minSecretLength)

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "valid", cfg: &Config{JWT: &JWTConfig{Secret: validSecret, TTLMs: 1000}}},
		{name: "missing jwt", cfg: &Config{}, wantErr: "jwt.secret must be provided"},
		{name: "blank secret", cfg: &Config{JWT: &JWTConfig{Secret: "   ", TTLMs: 1000}}, wantErr: "jwt.secret must be provided"},
		{name: "short secret", cfg: &Config{JWT: &JWTConfig{Secret: "short", TTLMs: 1000}}, wantErr: "at least 32 bytes"},
		{name: "non-positive ttl", cfg: &Config{JWT: &JWTConfig{Secret: validSecret, TTLMs: -1}}, wantErr: "jwt.ttlMs must be positive"},
		{
			name:    "bcrypt cost out of range",
			cfg:     &Config{JWT: &JWTConfig{Secret: validSecret, TTLMs: 1000}, Auth: &AuthConfig{BcryptCost: 99}},
			wantErr: "auth.bcryptCost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
