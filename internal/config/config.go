// Package config loads service configuration from a TOML file with
// environment-variable overrides. Deployed containers receive everything
// through the environment; the file exists for local development.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// StorageConfig configures the object-storage gateway.
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
}

// IndexConfig configures chunking and retrieval.
type IndexConfig struct {
	ChunkSize int `toml:"chunk_size"`
	Overlap   int `toml:"overlap"`
	TopK      int `toml:"top_k"`
}

// EmbeddingConfig configures the embedding backend (OpenAI-compatible).
type EmbeddingConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// IAMConfig configures the service-account token exchange.
type IAMConfig struct {
	ServiceAccountID string `toml:"service_account_id"`
	KeyID            string `toml:"key_id"`
	PrivateKeyFile   string `toml:"private_key_file"`
	TokenEndpoint    string `toml:"token_endpoint"`
}

// LLMConfig configures the foundation-model completion backend.
type LLMConfig struct {
	Endpoint    string  `toml:"endpoint"`
	FolderID    string  `toml:"folder_id"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// CollaboratorConfig holds the addresses of the peer services.
type CollaboratorConfig struct {
	Orchestrator string `toml:"orchestrator"`
	Moderator    string `toml:"moderator"`
	Retrieval    string `toml:"retrieval"`
	Gateway      string `toml:"gateway"`
	Logsink      string `toml:"logsink"`
}

// Config is the root configuration.
type Config struct {
	Port          int                `toml:"port"`
	Storage       StorageConfig      `toml:"storage"`
	Index         IndexConfig        `toml:"index"`
	Embedding     EmbeddingConfig    `toml:"embedding"`
	IAM           IAMConfig          `toml:"iam"`
	LLM           LLMConfig          `toml:"llm"`
	Collaborators CollaboratorConfig `toml:"collaborators"`
}

// Defaults mirror the production deployment.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
	DefaultTopK      = 3

	DefaultIAMTokenEndpoint = "https://iam.api.cloud.yandex.net/iam/v1/tokens"
	DefaultLLMEndpoint      = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	DefaultLLMModel         = "yandexgpt-lite"
	DefaultTemperature      = 0.6
	DefaultMaxTokens        = 2000
)

// Load reads the TOML file at path (skipped when path is empty or the file
// does not exist), applies environment overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// Fall through to env-only configuration.
		default:
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv overrides file values with the environment variables the
// deployment platform injects.
func (c *Config) applyEnv() {
	setInt(&c.Port, "PORT")

	setString(&c.Storage.Endpoint, "S3_ENDPOINT")
	setString(&c.Storage.Region, "S3_REGION")
	setString(&c.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&c.Storage.Bucket, "S3_BUCKET")
	setString(&c.Storage.Prefix, "S3_PREFIX")

	setString(&c.Embedding.BaseURL, "EMBEDDING_BASE_URL")
	setString(&c.Embedding.APIKey, "EMBEDDING_API_KEY")
	setString(&c.Embedding.Model, "EMBEDDING_MODEL")

	setString(&c.IAM.ServiceAccountID, "SERVICE_ACCOUNT_ID")
	setString(&c.IAM.KeyID, "KEY_ID")
	setString(&c.IAM.PrivateKeyFile, "PRIVATE_KEY_FILE")
	setString(&c.IAM.TokenEndpoint, "IAM_TOKEN_ENDPOINT")

	setString(&c.LLM.Endpoint, "LLM_ENDPOINT")
	setString(&c.LLM.FolderID, "FOLDER_ID")
	setString(&c.LLM.Model, "LLM_MODEL")

	setString(&c.Collaborators.Orchestrator, "ORCHESTRATOR_ADDRESS")
	setString(&c.Collaborators.Moderator, "MODERATOR_ADDRESS")
	setString(&c.Collaborators.Retrieval, "RAG_ADDRESS")
	setString(&c.Collaborators.Gateway, "YANDEX_GPT_ADDRESS")
	setString(&c.Collaborators.Logsink, "LOGGER_ADDRESS")
}

func (c *Config) applyDefaults() {
	if c.Index.ChunkSize <= 0 {
		c.Index.ChunkSize = DefaultChunkSize
	}
	if c.Index.Overlap <= 0 {
		c.Index.Overlap = DefaultOverlap
	}
	if c.Index.TopK <= 0 {
		c.Index.TopK = DefaultTopK
	}
	if c.IAM.TokenEndpoint == "" {
		c.IAM.TokenEndpoint = DefaultIAMTokenEndpoint
	}
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = DefaultLLMEndpoint
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
}

// RequireStorage validates the fields the ingest path cannot run without.
func (c *Config) RequireStorage() error {
	for _, f := range []struct{ name, val string }{
		{"S3_ENDPOINT", c.Storage.Endpoint},
		{"S3_ACCESS_KEY", c.Storage.AccessKey},
		{"S3_SECRET_KEY", c.Storage.SecretKey},
		{"S3_BUCKET", c.Storage.Bucket},
	} {
		if f.val == "" {
			return errors.New(f.name + " is required")
		}
	}
	return nil
}

// RequireIAM validates the fields the credential cache cannot run without.
func (c *Config) RequireIAM() error {
	for _, f := range []struct{ name, val string }{
		{"SERVICE_ACCOUNT_ID", c.IAM.ServiceAccountID},
		{"KEY_ID", c.IAM.KeyID},
		{"PRIVATE_KEY_FILE", c.IAM.PrivateKeyFile},
		{"FOLDER_ID", c.LLM.FolderID},
	} {
		if f.val == "" {
			return errors.New(f.name + " is required")
		}
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
