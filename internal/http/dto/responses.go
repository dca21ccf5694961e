package dto

type ErrorResponse struct {
	Error     string   `json:"error"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// IDResponse is returned by delete and state transition endpoints.
type IDResponse struct {
	ID string `json:"id"`
}

// IDsResponse wraps bulk results as [{"id": ...}].
func IDsResponse(ids []string) []IDResponse {
	out := make([]IDResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, IDResponse{ID: id})
	}
	return out
}
