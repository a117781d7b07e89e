package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/auth/iam"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/embedding/openai"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/index/memory"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/llm/yandex"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/objectstore/s3"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/services"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers/pdf"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers/plaintext"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/postprocessors/chunker"
)

// buildStore connects to object storage.
func buildStore(ctx context.Context) (driven.ObjectStore, error) {
	if err := cfg.RequireStorage(); err != nil {
		return nil, err
	}
	return s3.NewStore(ctx, s3.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
	})
}

func buildEmbedder() driven.EmbeddingService {
	return openai.NewService(openai.Config{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
	})
}

// buildIndexManager assembles the full ingest-and-cache stack.
func buildIndexManager(ctx context.Context) (*services.IndexManager, error) {
	store, err := buildStore(ctx)
	if err != nil {
		return nil, err
	}

	registry := normalisers.NewRegistry(plaintext.New(), pdf.New())
	proc := chunker.New(
		chunker.WithChunkSize(cfg.Index.ChunkSize),
		chunker.WithOverlap(cfg.Index.Overlap),
	)

	prefix := cfg.Storage.Prefix
	ingest := services.NewIngestService(store, registry, proc, buildEmbedder(), prefix, services.CachePrefix(prefix))

	return services.NewIndexManager(store, ingest, func() driven.VectorIndex { return memory.New() }, prefix), nil
}

// buildLLM assembles the credential cache and the completion client.
func buildLLM() (driven.LLMService, error) {
	if err := cfg.RequireIAM(); err != nil {
		return nil, err
	}

	pemBytes, err := os.ReadFile(cfg.IAM.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	key, err := iam.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, err
	}

	tokens, err := iam.NewTokenSource(iam.Config{
		ServiceAccountID: cfg.IAM.ServiceAccountID,
		KeyID:            cfg.IAM.KeyID,
		PrivateKey:       key,
		TokenEndpoint:    cfg.IAM.TokenEndpoint,
	})
	if err != nil {
		return nil, err
	}

	return yandex.New(yandex.Config{
		Endpoint:    cfg.LLM.Endpoint,
		FolderID:    cfg.LLM.FolderID,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, tokens)
}

// requireAddress fails fast when a collaborator address is missing from
// the configuration.
func requireAddress(name, addr string) error {
	if addr == "" {
		return errors.New(name + " address is required")
	}
	return nil
}
