package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RAILWAY_ENVIRONMENT_NAME", "test")
	for _, key := range []string{"STUDYAI_CONFIG", "PORT", "DB_URL", "ALLOWED_ORIGINS", "LOG_MODE", "GEMINI_API_KEY", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	env, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if env.Port != "8080" {
		t.Errorf("Port = %q, want %q", env.Port, "8080")
	}
	if env.DatabaseURL != "studyai.db" {
		t.Errorf("DatabaseURL = %q, want %q", env.DatabaseURL, "studyai.db")
	}
	if env.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", env.GeminiModel)
	}
	if !env.IsDevelopment {
		t.Error("IsDevelopment = false, want true")
	}
	if len(env.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins is empty")
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "studyai.toml")
	body := `
port = "9000"
database_url = "postgres://u:p@localhost:5432/study"
allowed_origins = ["https://study.example.com"]
log_mode = "production"
gemini_model = "gemini-1.5-pro"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("STUDYAI_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	env, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if env.Port != "9100" {
		t.Errorf("Port = %q, want env override 9100", env.Port)
	}
	if env.DatabaseURL != "postgres://u:p@localhost:5432/study" {
		t.Errorf("DatabaseURL = %q", env.DatabaseURL)
	}
	if got := strings.Join(env.AllowedOrigins, "|"); got != "https://a.example.com|https://b.example.com" {
		t.Errorf("AllowedOrigins = %q", got)
	}
	if env.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("GeminiModel = %q", env.GeminiModel)
	}
	if env.IsDevelopment {
		t.Error("IsDevelopment = true for production log mode")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STUDYAI_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
}

func TestRead_Invalid(t *testing.T) {
	if _, err := Read(strings.NewReader("port = [")); err == nil {
		t.Fatal("Read() error = nil, want decode error")
	}
}
