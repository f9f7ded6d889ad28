package handlers

import (
	"strings"
	"unicode/utf8"

	"hr-chatbot/internal/dto"
	"hr-chatbot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxMessageLength bounds the chat message, in runes.
const maxMessageLength = 500

type ChatHandler struct {
	ragService  *service.RAGService
	llmService  *service.LLMService
	authService *service.AuthService
	threshold   float64
	environment string
	logger      *zap.Logger
}

func NewChatHandler(
	ragService *service.RAGService,
	llmService *service.LLMService,
	authService *service.AuthService,
	threshold float64,
	environment string,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		ragService:  ragService,
		llmService:  llmService,
		authService: authService,
		threshold:   threshold,
		environment: environment,
		logger:      logger,
	}
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message must not be empty",
		})
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message too long",
		})
	}

	username, _ := c.Locals("username").(string)
	user, err := h.authService.Profile(username)
	if err != nil {
		h.logger.Warn("Profile lookup failed for chat request",
			zap.String("username", username), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found in directory",
		})
	}

	requestID := uuid.NewString()
	h.logger.Info("Chat request",
		zap.String("request_id", requestID),
		zap.String("username", username),
		zap.String("profile", user.EmployeeType),
	)

	decision := h.ragService.Answer(c.Context(), message, user.EmployeeType, h.threshold)
	answer := h.llmService.ComposeReply(c.Context(), message, user.EmployeeType, decision)

	h.logger.Info("Chat response",
		zap.String("request_id", requestID),
		zap.String("mode", string(decision.Mode)),
		zap.Float64("similarity", decision.Similarity),
	)

	return c.JSON(dto.ChatResponse{
		Question:   message,
		Answer:     answer,
		Profile:    user.EmployeeType + "/" + user.Title,
		Domain:     decision.Domain,
		Mode:       string(decision.Mode),
		Similarity: decision.Similarity,
	})
}

func (h *ChatHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:      "healthy",
		Environment: h.environment,
	})
}
