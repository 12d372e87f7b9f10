package models

type AnalyzeResponse struct {
	AnalysisResult string `json:"analysis_result"`
	SessionID      string `json:"session_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
	Kind   string `json:"kind"`
	Code   int    `json:"code"`
}
