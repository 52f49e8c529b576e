package evaluation

// Config controls the upstream call made for every evaluation.
type Config struct {
	// MaxTokens bounds the length of the model reply.
	MaxTokens int

	// Temperature is kept low so grading stays reproducible.
	Temperature float64
}

// DefaultConfig returns the parameters the rubric prompt was tuned with.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1500,
		Temperature: 0.3,
	}
}
