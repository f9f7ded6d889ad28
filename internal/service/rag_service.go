package service

import (
	"context"
	"fmt"
	"strings"

	"hr-chatbot/internal/models"
	"hr-chatbot/internal/repository"

	"go.uber.org/zap"
)

// RAGService runs the retrieval-and-authorization pipeline: classify the
// message, find the single best match across the whole knowledge base,
// then gate disclosure on the requester's profile. Search is global on
// purpose: pre-filtering by profile would collapse "found but not yours"
// into "not found" and hide the better-worded unauthorized match.
type RAGService struct {
	store   *repository.KnowledgeStore
	index   *repository.VectorIndex
	encoder Encoder
	logger  *zap.Logger
}

// BuildRAGService encodes the corpus and assembles the service. Called
// once at startup; any failure here is fatal, nothing partially
// initialized is ever served.
func BuildRAGService(ctx context.Context, store *repository.KnowledgeStore, encoder Encoder, logger *zap.Logger) (*RAGService, error) {
	vectors, err := encoder.EmbedDocuments(ctx, store.Questions())
	if err != nil {
		return nil, fmt.Errorf("failed to embed knowledge base: %w", err)
	}

	index, err := repository.NewVectorIndex(vectors)
	if err != nil {
		return nil, err
	}
	if index.Len() != store.Len() {
		return nil, fmt.Errorf("%w: %d vectors for %d entries", repository.ErrSearch, index.Len(), store.Len())
	}

	logger.Info("Embedding index built",
		zap.Int("entries", index.Len()),
		zap.Int("dimension", index.Dim()),
	)

	return &RAGService{
		store:   store,
		index:   index,
		encoder: encoder,
		logger:  logger,
	}, nil
}

// Answer resolves one query to a terminal response mode. It never
// returns an error: per-query failures degrade to LOW_CONFIDENCE with
// similarity 0 and a logged diagnostic.
func (s *RAGService) Answer(ctx context.Context, message, profile string, threshold float64) models.Decision {
	if kind := ClassifyUtterance(message); kind != UtteranceSubstantive {
		s.logger.Info("Conversational message, skipping retrieval",
			zap.String("kind", kind.String()),
		)
		return models.Decision{Mode: models.ModeGenericOnly}
	}

	query, err := s.encoder.EmbedQuery(ctx, message)
	if err != nil {
		s.logger.Error("Query embedding failed", zap.Error(err))
		return models.Decision{Mode: models.ModeLowConfidence}
	}

	best, score, err := s.index.Search(query)
	if err != nil {
		s.logger.Error("Similarity search failed", zap.Error(err))
		return models.Decision{Mode: models.ModeLowConfidence}
	}

	if score < threshold {
		s.logger.Info("Best match below threshold",
			zap.Int("entry_id", best),
			zap.Float64("similarity", score),
			zap.Float64("threshold", threshold),
		)
		return models.Decision{Mode: models.ModeLowConfidence, Similarity: score}
	}

	entry, ok := s.store.Entry(best)
	if !ok {
		s.logger.Error("Search returned unknown entry id", zap.Int("entry_id", best))
		return models.Decision{Mode: models.ModeLowConfidence}
	}

	if !authorizeProfile(entry.Profile, profile) {
		// Log ids and profiles only; the gated answer text stays out of
		// every branch reachable by unauthorized callers, logs included.
		s.logger.Warn("Matched entry not authorized for requester",
			zap.Int("entry_id", entry.ID),
			zap.String("entry_profile", normalizeProfile(entry.Profile)),
			zap.String("requester_profile", normalizeProfile(profile)),
			zap.Float64("similarity", score),
		)
		return models.Decision{Mode: models.ModeDenied, Similarity: score}
	}

	s.logger.Info("Knowledge entry disclosed",
		zap.Int("entry_id", entry.ID),
		zap.String("domain", entry.Domain),
		zap.Float64("similarity", score),
	)
	return models.Decision{
		Mode:       models.ModeDisclose,
		Answer:     entry.Answer,
		Domain:     entry.Domain,
		Similarity: score,
	}
}

// authorizeProfile is a strict exact-match policy. No hierarchy between
// employment categories: a CADRE requester is never authorized for CDI
// entries, however related the categories are organizationally.
func authorizeProfile(entryProfile, requesterProfile string) bool {
	return normalizeProfile(entryProfile) == normalizeProfile(requesterProfile)
}

func normalizeProfile(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
