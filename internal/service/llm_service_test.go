package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"hr-chatbot/internal/models"
	"hr-chatbot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLLMService(t *testing.T) *LLMService {
	t.Helper()
	svc, err := NewLLMService(&config.OllamaConfig{
		BaseURL: "http://localhost:11434",
		Model:   "llama3.2:3b",
		Timeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestComposeReplyDiscloseIsVerbatimBehindPrefix(t *testing.T) {
	svc := newTestLLMService(t)
	answer := "Via le portail RH.\nOnglet « Absences »."

	reply := svc.ComposeReply(context.Background(), "Comment poser un congé ?", "CDI", models.Decision{
		Mode:   models.ModeDisclose,
		Answer: answer,
		Domain: "Congés",
	})

	require.True(t, strings.HasPrefix(reply, disclosurePrefix))
	assert.Equal(t, answer, strings.TrimPrefix(reply, disclosurePrefix),
		"the stored answer must survive composition byte-for-byte")
}

func TestComposeReplyDeniedNeverMentionsAnswer(t *testing.T) {
	svc := newTestLLMService(t)

	// The pipeline strips the answer before the denied decision reaches
	// composition; even a leaked one must not surface.
	reply := svc.ComposeReply(context.Background(), "Comment poser un congé ?", "STAGIAIRE", models.Decision{
		Mode: models.ModeDenied,
	})

	assert.Equal(t, deniedMessage, reply)
	assert.NotContains(t, reply, "portail RH")
}
