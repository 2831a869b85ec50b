package handlers

import (
	"net/http"

	"genai-assistant/internal/llm"
	"genai-assistant/internal/persona"
)

// ModelsHandler reports which providers are configured and which models
// they offer.
type ModelsHandler struct {
	client *llm.Client
}

// NewModelsHandler creates a new ModelsHandler.
func NewModelsHandler(client *llm.Client) *ModelsHandler {
	return &ModelsHandler{client: client}
}

// ModelsResponse lists configured providers, their known models, and the
// available personas. Model identifiers are compound "provider:model" values
// accepted by the chat endpoint.
type ModelsResponse struct {
	Providers []string                   `json:"providers"`
	Models    map[string][]llm.ModelInfo `json:"models"`
	Personas  []string                   `json:"personas"`
}

// ServeHTTP handles GET /api/models.
func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	configured := h.client.Providers()

	models := make(map[string][]llm.ModelInfo, len(configured))
	for _, p := range configured {
		models[p] = llm.ListModels(p)
	}

	writeJSON(w, http.StatusOK, ModelsResponse{
		Providers: configured,
		Models:    models,
		Personas:  persona.Names(),
	})
}
