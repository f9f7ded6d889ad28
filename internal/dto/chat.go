package dto

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the user-facing reply. Domain is set only when a
// knowledge entry was disclosed.
type ChatResponse struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Profile    string  `json:"profile"`
	Domain     string  `json:"domain,omitempty"`
	Mode       string  `json:"mode"`
	Similarity float64 `json:"similarity"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}
