package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON and form endpoints.
// Default is 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

// Mode selects which interface is served at the root path.
type Mode string

const (
	// ModeAPI serves a status line at GET / and JSON at POST /predict.
	ModeAPI Mode = "api"
	// ModeForm serves the HTML form at GET / and POST /.
	ModeForm Mode = "form"
	// ModeBoth serves the HTML form at / and JSON at POST /predict.
	ModeBoth Mode = "both"
)
