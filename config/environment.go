package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Environment struct {
	IsDevelopment  bool     `toml:"-"`
	Port           string   `toml:"port"`
	DatabaseURL    string   `toml:"database_url"`
	AllowedOrigins []string `toml:"allowed_origins"`
	LogMode        string   `toml:"log_mode"`
	GeminiAPIKey   string   `toml:"gemini_api_key"`
	GeminiModel    string   `toml:"gemini_model"`
}

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "studyai.db"
	defaultGeminiModel = "gemini-2.0-flash"
)

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load builds the Environment from, in increasing precedence: the TOML file
// named by STUDYAI_CONFIG, a local .env file, and the process environment.
func Load() (*Environment, error) {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		_ = godotenv.Load()
	}

	env := &Environment{}
	if path := strings.TrimSpace(os.Getenv("STUDYAI_CONFIG")); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()
		fileEnv, err := Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
		env = fileEnv
	}

	applyOverrides(env)
	applyDefaults(env)
	return env, nil
}

// Read decodes an Environment from TOML.
func Read(r io.Reader) (*Environment, error) {
	var env Environment
	if _, err := toml.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &env, nil
}

func applyOverrides(env *Environment) {
	if v, ok := lookup("PORT"); ok {
		env.Port = v
	}
	if v, ok := lookup("DB_URL"); ok {
		env.DatabaseURL = v
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		env.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_MODE"); ok {
		env.LogMode = v
	}
	if v, ok := lookup("GEMINI_API_KEY"); ok {
		env.GeminiAPIKey = v
	}
	if v, ok := lookup("GEMINI_MODEL"); ok {
		env.GeminiModel = v
	}
}

func applyDefaults(env *Environment) {
	if env.Port == "" {
		env.Port = defaultPort
	}
	if env.DatabaseURL == "" {
		env.DatabaseURL = defaultDatabaseURL
	}
	if len(env.AllowedOrigins) == 0 {
		env.AllowedOrigins = append([]string(nil), defaultOrigins...)
	}
	if env.GeminiModel == "" {
		env.GeminiModel = defaultGeminiModel
	}
	mode := strings.ToLower(env.LogMode)
	env.IsDevelopment = mode != "prod" && mode != "production"
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
