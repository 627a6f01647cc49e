package dto

type ExportRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	// Format is checked by the export service so unsupported values surface
	// as a typed export error, not a validation failure.
	Format string `json:"format" validate:"required"`
}

type ExportResponse struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}
