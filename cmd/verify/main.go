// Command verify is an end-to-end smoke check: it logs a set of test
// users into a running instance, asks each user their question and
// verifies the expected fragment appears in the reply.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"hr-chatbot/internal/dto"
	"hr-chatbot/pkg/logger"

	"go.uber.org/zap"
)

type verifyCase struct {
	Username     string
	Password     string
	Profile      string
	Question     string
	ExpectedPart string
}

var cases = []verifyCase{
	{"alice", "password", "CADRE", "Comment déclarer des heures supplémentaires ?", "Via le manager"},
	{"bob", "password", "CDI", "Comment poser un congé annuel ?", "via le portail RH"},
	{"david", "password", "STAGIAIRE", "Ai-je accès à la cantine ?", "Oui les stagiaires y ont accès"},
}

func main() {
	if err := logger.Init("info"); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	baseURL := os.Getenv("VERIFY_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 60 * time.Second}
	failures := 0

	for _, tc := range cases {
		caseLogger := appLogger.With(
			zap.String("username", tc.Username),
			zap.String("profile", tc.Profile),
		)

		token, err := login(client, baseURL, tc.Username, tc.Password)
		if err != nil {
			caseLogger.Error("Login failed", zap.Error(err))
			failures++
			continue
		}

		reply, err := chat(client, baseURL, token, tc.Question)
		if err != nil {
			caseLogger.Error("Chat request failed", zap.Error(err))
			failures++
			continue
		}

		if !strings.Contains(strings.ToLower(reply.Answer), strings.ToLower(tc.ExpectedPart)) {
			caseLogger.Error("Answer mismatch",
				zap.String("expected_part", tc.ExpectedPart),
				zap.String("answer", reply.Answer),
				zap.String("mode", reply.Mode),
			)
			failures++
			continue
		}

		caseLogger.Info("Answer verified",
			zap.String("mode", reply.Mode),
			zap.String("domain", reply.Domain),
			zap.Float64("similarity", reply.Similarity),
			zap.Bool("strict_prefix", strings.HasPrefix(reply.Answer, "Pour répondre à votre question")),
		)
	}

	if failures > 0 {
		appLogger.Error("Verification finished with failures", zap.Int("failures", failures))
		os.Exit(1)
	}
	appLogger.Info("All verification cases passed", zap.Int("cases", len(cases)))
}

func login(client *http.Client, baseURL, username, password string) (string, error) {
	var resp dto.TokenResponse
	err := postJSON(client, baseURL+"/api/auth/login",
		dto.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func chat(client *http.Client, baseURL, token, message string) (*dto.ChatResponse, error) {
	body, err := json.Marshal(dto.ChatRequest{Message: message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var resp dto.ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func postJSON(client *http.Client, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
