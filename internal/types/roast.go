package types

// RoastRequest is the body of POST /api/roast.
type RoastRequest struct {
	Text string `json:"text"`
}

// RoastResponse is the success body of the analysis endpoints.
type RoastResponse struct {
	Metrics *ResumeMetrics `json:"metrics"`
}

// UploadResponse is the success body of POST /api/roast/upload.
type UploadResponse struct {
	Metrics     *ResumeMetrics `json:"metrics"`
	TextPreview string         `json:"textPreview"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
