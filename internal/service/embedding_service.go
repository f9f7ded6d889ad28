package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hr-chatbot/pkg/config"

	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

var ErrEmbedding = errors.New("embedding failed")

// Encoder maps text into the shared embedding space. Corpus and query
// vectors must come from the identical encoding function.
type Encoder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingService encodes text with an Ollama embedding model. Safe for
// concurrent use; each call is bounded by the configured timeout.
type EmbeddingService struct {
	llm     *ollama.LLM
	timeout time.Duration
	logger  *zap.Logger
}

func NewEmbeddingService(cfg *config.OllamaConfig, logger *zap.Logger) (*EmbeddingService, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	logger.Info("Embedding service initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.EmbeddingModel),
	)

	return &EmbeddingService{
		llm:     llm,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// EmbedDocuments encodes the whole corpus, preserving input order 1:1.
func (s *EmbeddingService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", ErrEmbedding)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout*time.Duration(len(texts)))
	defer cancel()

	vectors, err := s.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbedding, len(vectors), len(texts))
	}

	dim := len(vectors[0])
	for i, vec := range vectors {
		if err := validateVector(vec, dim); err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
	}
	return vectors, nil
}

// EmbedQuery encodes a single incoming message.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vectors, err := s.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: got %d vectors for one text", ErrEmbedding, len(vectors))
	}
	if err := validateVector(vectors[0], len(vectors[0])); err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// validateVector rejects malformed encoder output; the pipeline must
// never continue with a corrupt vector.
func validateVector(vec []float32, wantDim int) error {
	if len(vec) == 0 || len(vec) != wantDim {
		return fmt.Errorf("%w: dimension %d, want %d", ErrEmbedding, len(vec), wantDim)
	}
	for _, v := range vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: vector contains non-finite values", ErrEmbedding)
		}
	}
	return nil
}
