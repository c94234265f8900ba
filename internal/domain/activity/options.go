package activity

// Options tunes how the service calls the generation service.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultOptions matches the settings the endpoint has always used.
func DefaultOptions() Options {
	return Options{
		Model:       "gpt-4o",
		Temperature: 0.8,
		MaxTokens:   1000,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Model == "" {
		o.Model = def.Model
	}
	if o.Temperature <= 0 {
		o.Temperature = def.Temperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = def.MaxTokens
	}
	return o
}
