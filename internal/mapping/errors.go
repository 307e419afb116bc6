package mapping

// ConfigurationError means the mapping set itself is broken (missing or
// ambiguous pair, empty destinations). It is a startup failure.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "property mapping: " + e.Msg }
