package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// PageSize is the default number of rows per listing page.
	PageSize int `mapstructure:"page_size" default:"10"`
	// PageSizeMax caps the per_page query parameter.
	PageSizeMax int `mapstructure:"page_size_max" default:"10"`
}

// ClampPageSize resolves a requested per-page value against the configured
// default and cap. Zero or negative requests fall back to the default.
func (c Config) ClampPageSize(requested int) int {
	if requested <= 0 {
		return c.PageSize
	}
	if requested > c.PageSizeMax {
		return c.PageSizeMax
	}
	return requested
}
