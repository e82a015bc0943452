package config

// RunFlagsNameMapping maps the config fields of the run command
// to their CLI flag names
type RunFlagsNameMapping struct {
	BaseURL    string
	EchoJSON   string
	Timeout    string
	RetryCount string
	RetryDelay string
	Plan       string
}
