package dto

// Problem is the uniform error body for every failed request, loosely
// following RFC 7807. TraceID carries the request id so a client report
// can be matched against server logs.
type Problem struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	TraceID string `json:"traceId"`
}
