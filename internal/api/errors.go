package api

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/abhisek/promptcheck/internal/evaluation"
	"github.com/abhisek/promptcheck/internal/llm"
)

// User-facing messages for failures that are not request validation.
const (
	MsgMethodNotAllowed = "Nur POST-Anfragen erlaubt"
	MsgIncomplete       = "Unvollständige Antwort von der KI"
	MsgRateLimited      = "Zu viele Anfragen. Bitte kurz warten."
	MsgNetwork          = "Zeitüberschreitung/Netzwerkfehler. Bitte erneut versuchen."
	MsgGeneric          = "Es ist ein Fehler aufgetreten."
)

var (
	reRateLimit  = regexp.MustCompile(`(?i)rate[_\s-]?limit`)
	reNetwork    = regexp.MustCompile(`(?i)timeout|aborted|network`)
	reCredential = regexp.MustCompile(`(?i)api.?key|unauthorized|forbidden`)
	reModel      = regexp.MustCompile(`(?i)model`)
	reBadModel   = regexp.MustCompile(`(?i)unknown|invalid`)
	reAPIKey     = regexp.MustCompile(`(?i)api.?key`)
)

var providerNames = map[string]string{
	llm.ProviderAnthropic:  "Anthropic",
	llm.ProviderOpenAI:     "OpenAI",
	llm.ProviderGemini:     "Gemini",
	llm.ProviderOpenRouter: "OpenRouter",
}

// errorMapper turns evaluation and upstream errors into a status code and
// a German message. keyEnv and modelEnv name the variables of the
// configured provider so hints point at the right setting.
type errorMapper struct {
	keyEnv   string
	modelEnv string
}

func (m errorMapper) mapError(err error) (int, string) {
	var reqErr *evaluation.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.Message
	}

	if errors.Is(err, evaluation.ErrMissingCredential) {
		return http.StatusInternalServerError, fmt.Sprintf("Server: %s ist nicht gesetzt.", m.keyEnv)
	}

	var upErr *llm.ErrUpstream
	if errors.As(err, &upErr) {
		return http.StatusBadGateway, m.upstreamReason(upErr)
	}

	if errors.Is(err, evaluation.ErrIncomplete) {
		return http.StatusInternalServerError, MsgIncomplete
	}

	return http.StatusInternalServerError, ClassifyError(err, m.keyEnv)
}

// upstreamReason passes the provider's own message through and appends a
// hint for the common misconfigurations.
func (m errorMapper) upstreamReason(e *llm.ErrUpstream) string {
	reason := e.Message
	if reason == "" {
		name, ok := providerNames[e.Provider]
		if !ok {
			name = e.Provider
		}
		reason = fmt.Sprintf("%s-API-Fehler (%d)", name, e.StatusCode)
	}

	if reModel.MatchString(reason) && reBadModel.MatchString(reason) {
		reason += fmt.Sprintf(" — Setze %s oder verwende ein gültiges Modell.", m.modelEnv)
	}
	if reAPIKey.MatchString(reason) {
		reason += fmt.Sprintf(" — Prüfe %s.", m.keyEnv)
	}
	if e.RateLimited() {
		reason += " — " + MsgRateLimited
	}
	return reason
}

// ClassifyError maps an unexpected failure onto one of four user-facing
// categories by looking at its text.
func ClassifyError(err error, keyEnv string) string {
	if err == nil {
		return MsgGeneric
	}
	txt := err.Error()
	switch {
	case reRateLimit.MatchString(txt):
		return MsgRateLimited
	case reNetwork.MatchString(txt):
		return MsgNetwork
	case reCredential.MatchString(txt):
		return fmt.Sprintf("API-Konfiguration fehlerhaft. Bitte %s prüfen.", keyEnv)
	}
	return MsgGeneric
}
