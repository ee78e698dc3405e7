package providers

import (
	"fmt"

	"github.com/JAS0NN/youtube-summary/config"
	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
)

type route struct {
	endpoint     string
	defaultModel string
}

// routes is the static provider table. Each provider maps to exactly one
// endpoint and one default model.
var routes = map[models.Provider]route{
	models.ProviderOpenAI:     {endpoint: "https://api.openai.com/v1/chat/completions", defaultModel: "gpt-4o"},
	models.ProviderGrok:       {endpoint: "https://api.x.ai/v1/chat/completions", defaultModel: "grok-3"},
	models.ProviderOpenRouter: {endpoint: "https://openrouter.ai/api/v1/chat/completions", defaultModel: "openai/gpt-4o"},
}

// Route maps a provider name plus credentials to a ProviderConfig. A custom
// model is honored only for openrouter. Pure lookup; no network calls.
func Route(name string, creds config.Credentials, customModel string) (models.ProviderConfig, error) {
	const op = "providers.Route"

	provider := models.Provider(name)
	r, ok := routes[provider]
	if !ok {
		return models.ProviderConfig{}, apperrors.Validation(op, nil, fmt.Sprintf("Invalid provider: %s", name))
	}

	key := keyFor(provider, creds)
	if key == "" {
		return models.ProviderConfig{}, apperrors.Configuration(op, nil,
			fmt.Sprintf("%s API key not found. Please configure your API keys.", displayName(provider)))
	}

	model := r.defaultModel
	if provider == models.ProviderOpenRouter && customModel != "" {
		model = customModel
	}

	return models.ProviderConfig{
		Name:        provider,
		EndpointURL: r.endpoint,
		ModelID:     model,
		APIKey:      key,
	}, nil
}

// Available reports which providers have a configured credential.
func Available(creds config.Credentials) map[models.Provider]bool {
	avail := make(map[models.Provider]bool, len(routes))
	for provider := range routes {
		avail[provider] = keyFor(provider, creds) != ""
	}
	return avail
}

// Default picks the preferred provider among the configured ones:
// openai, then grok, then openrouter. Empty when none is configured.
func Default(creds config.Credentials) models.Provider {
	for _, p := range []models.Provider{models.ProviderOpenAI, models.ProviderGrok, models.ProviderOpenRouter} {
		if keyFor(p, creds) != "" {
			return p
		}
	}
	return ""
}

func keyFor(provider models.Provider, creds config.Credentials) string {
	switch provider {
	case models.ProviderOpenAI:
		return creds.OpenAI
	case models.ProviderGrok:
		return creds.Grok
	case models.ProviderOpenRouter:
		return creds.OpenRouter
	}
	return ""
}

func displayName(provider models.Provider) string {
	switch provider {
	case models.ProviderOpenAI:
		return "OpenAI"
	case models.ProviderGrok:
		return "Grok"
	case models.ProviderOpenRouter:
		return "OpenRouter"
	}
	return string(provider)
}
