package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse metadatos de paginación.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// BulkFailureResponse una falla individual dentro de un lote.
type BulkFailureResponse struct {
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

// BulkResultResponse reporte de resultado parcial de una operación masiva.
type BulkResultResponse struct {
	Succeeded []string              `json:"succeeded"`
	Failed    []BulkFailureResponse `json:"failed"`
}
