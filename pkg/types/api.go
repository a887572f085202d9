package types

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Predicted class: 1 = approved, 0 = rejected.
	// example: 1
	PredictedClass int `json:"prediccion_clase" example:"1"`
	// Probability of the approved class, 0..1.
	// example: 0.8672
	ApprovalProbability float64 `json:"probabilidad_aprobado" example:"0.8672"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: A2: not a number ("abc")
	Error string `json:"error" example:"A2: not a number (\"abc\")"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Service state (ready once the model is loaded).
	// example: ready
	State string `json:"state" example:"ready"`
	// Serving mode: api, form or both.
	// example: api
	Mode string `json:"mode,omitempty" example:"api"`
	// Loaded model summary.
	Model ModelInfo `json:"model"`
	// Maximum value per clamped field; null means unclamped.
	Clamp map[string]*float64 `json:"clamp"`
	// Fields overridden with a constant before inference.
	Force map[string]string `json:"force,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
