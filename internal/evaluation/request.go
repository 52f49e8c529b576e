package evaluation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// User-facing rejection messages.
const (
	MsgInvalidPrompt   = "Kein gültiger Prompt angegeben"
	MsgPromptTooShort  = "Prompt ist zu kurz (mindestens 10 Zeichen)"
	MsgPromptTooLong   = "Prompt ist zu lang (maximal 2000 Zeichen)"
	MsgInvalidStrategy = "Ungültige Strategie. Erlaubt: beginner_3w | intermediate_kaf"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// nonblank rejects whitespace-only text; the length rules apply to the
	// untrimmed prompt.
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateRequest checks a request and returns it with the default strategy
// applied. Lengths are counted in characters, not bytes. The error is
// always a *RequestError.
func ValidateRequest(req Request) (Request, error) {
	if req.Strategy == "" {
		req.Strategy = DefaultStrategy
	}

	err := requestValidator.Struct(req)
	if err == nil {
		return req, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Request{}, &RequestError{Kind: KindInvalidInput, Message: MsgInvalidPrompt, Err: err}
	}

	// Prompt errors come first in field order, which matches the order the
	// checks are reported to the user.
	fe := fieldErrs[0]
	if fe.StructField() == "Strategy" {
		return Request{}, &RequestError{Kind: KindInvalidStrategy, Message: MsgInvalidStrategy, Err: err}
	}

	msg := MsgInvalidPrompt
	switch fe.Tag() {
	case "min":
		msg = MsgPromptTooShort
	case "max":
		msg = MsgPromptTooLong
	}
	return Request{}, &RequestError{Kind: KindInvalidInput, Message: msg, Err: err}
}

// ParseStrategy reports whether s names a recognized strategy.
func ParseStrategy(s string) (Strategy, bool) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
