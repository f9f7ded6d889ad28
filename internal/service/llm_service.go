package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hr-chatbot/internal/models"
	"hr-chatbot/pkg/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const (
	// disclosurePrefix is cosmetic: everything after it is the stored
	// answer byte-for-byte.
	disclosurePrefix = "Pour répondre à votre question : "

	deniedMessage = "Désolé, cette information n'est pas disponible pour votre profil. " +
		"Veuillez contacter le service RH pour plus de précisions."

	fallbackMessage = "Désolé, le service de chat est temporairement indisponible. Veuillez réessayer."
)

// LLMService produces the user-facing reply text. Disclosed and denied
// outcomes use fixed composition; only the generic branches call the
// language model.
type LLMService struct {
	llm     *ollama.LLM
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMService(cfg *config.OllamaConfig, logger *zap.Logger) (*LLMService, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
	}

	logger.Info("LLM service initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
	)

	return &LLMService{
		llm:     llm,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// ComposeReply turns a pipeline decision into the reply text.
func (s *LLMService) ComposeReply(ctx context.Context, question, profile string, decision models.Decision) string {
	switch decision.Mode {
	case models.ModeDisclose:
		return disclosurePrefix + decision.Answer
	case models.ModeDenied:
		return deniedMessage
	default:
		// GENERIC_ONLY and LOW_CONFIDENCE: generate with no retrieved
		// context. Gated knowledge-base content is never handed to the
		// generator on these branches.
		return s.generate(ctx, question, profile)
	}
}

func (s *LLMService) generate(ctx context.Context, question, profile string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := llms.GenerateFromSinglePrompt(ctx, s.llm, buildGenericPrompt(question, profile),
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		s.logger.Error("Ollama generation failed", zap.Error(err))
		return fallbackMessage
	}
	return strings.TrimSpace(reply)
}

func buildGenericPrompt(question, profile string) string {
	return fmt.Sprintf(`Tu es un assistant RH professionnel de l'entreprise Serini.

Profil de l'utilisateur : %s

Question de l'utilisateur : %s

Instructions :
- Si c'est une salutation (bonjour, salut, etc.), réponds poliment et propose ton aide
- Si c'est une question RH à laquelle tu ne peux pas répondre sans information spécifique, suggère de contacter le service RH
- Si c'est une question hors-sujet (météo, sport, etc.), explique poliment que tu es un assistant RH
- Reste professionnel et concis
- Ne réponds que dans le cadre des ressources humaines

Réponse :`, profile, question)
}
