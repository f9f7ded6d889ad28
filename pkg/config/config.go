package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrConfiguration marks a fatal startup misconfiguration.
var ErrConfiguration = errors.New("invalid configuration")

type Config struct {
	Server      ServerConfig
	LDAP        LDAPConfig
	JWT         JWTConfig
	Ollama      OllamaConfig
	RAG         RAGConfig
	CORS        CORSConfig
	Logger      LoggerConfig
	Environment string
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LDAPConfig struct {
	// Enabled=false switches authentication to the local users file,
	// which is what development and the test fixtures use.
	Enabled       bool
	Host          string
	Port          string
	BaseDN        string
	AdminDN       string
	AdminPassword string
	UsersFile     string
}

// ServerURI builds the ldap:// URI from host and port.
func (c *LDAPConfig) ServerURI() string {
	return fmt.Sprintf("ldap://%s:%s", c.Host, c.Port)
}

type JWTConfig struct {
	SecretKey        string
	RefreshSecretKey string
	Expiration       time.Duration
	RefreshExp       time.Duration
}

type OllamaConfig struct {
	BaseURL        string
	Model          string
	EmbeddingModel string
	Timeout        time.Duration
}

type RAGConfig struct {
	KnowledgePath       string
	SimilarityThreshold float64
}

type CORSConfig struct {
	Origins string
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or project root;
	// absent files are fine, plain environment variables still apply.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	ollamaTimeout, _ := strconv.Atoi(getEnv("OLLAMA_TIMEOUT", "30"))
	ldapEnabled := getEnv("LDAP_ENABLED", "true") == "true"

	threshold, err := strconv.ParseFloat(getEnv("RAG_SIMILARITY_THRESHOLD", "0.65"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: RAG_SIMILARITY_THRESHOLD: %v", ErrConfiguration, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		LDAP: LDAPConfig{
			Enabled:       ldapEnabled,
			Host:          getEnv("LDAP_HOST", "ldap-service"),
			Port:          getEnv("LDAP_PORT", "389"),
			BaseDN:        getEnv("LDAP_BASE_DN", "dc=serini,dc=local"),
			AdminDN:       getEnv("LDAP_ADMIN_DN", "cn=admin,dc=serini,dc=local"),
			AdminPassword: getEnv("LDAP_ADMIN_PASSWORD", ""),
			UsersFile:     getEnv("LOCAL_USERS_FILE", "data/users.json"),
		},
		JWT: JWTConfig{
			SecretKey:        getEnv("JWT_SECRET_KEY", "change-me-in-production"),
			RefreshSecretKey: getEnv("JWT_REFRESH_SECRET_KEY", "change-me-too-in-production"),
			Expiration:       time.Duration(jwtExp) * time.Minute,
			RefreshExp:       time.Duration(refreshExp) * time.Hour,
		},
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://ollama:11434"),
			Model:          getEnv("OLLAMA_MODEL", "llama3.2:3b"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			Timeout:        time.Duration(ollamaTimeout) * time.Second,
		},
		RAG: RAGConfig{
			KnowledgePath:       getEnv("KNOWLEDGE_BASE_PATH", "data/knowledge_base.csv"),
			SimilarityThreshold: threshold,
		},
		CORS: CORSConfig{
			Origins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings that would only break at query time.
func (c *Config) Validate() error {
	if c.RAG.SimilarityThreshold < 0 || c.RAG.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold %.2f outside [0,1]", ErrConfiguration, c.RAG.SimilarityThreshold)
	}
	if c.RAG.KnowledgePath == "" {
		return fmt.Errorf("%w: knowledge base path is empty", ErrConfiguration)
	}
	if c.JWT.SecretKey == "" || c.JWT.RefreshSecretKey == "" {
		return fmt.Errorf("%w: JWT secret keys must not be empty", ErrConfiguration)
	}
	if !c.LDAP.Enabled && c.LDAP.UsersFile == "" {
		return fmt.Errorf("%w: LDAP disabled but no local users file configured", ErrConfiguration)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
