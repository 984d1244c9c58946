package request_models

type IngestRequest struct {
	City     string           `json:"city" binding:"required"`
	Category string           `json:"category" binding:"required"`
	Records  []map[string]any `json:"records" binding:"required"`
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}
