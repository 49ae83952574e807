package api

type Handler struct {
	maxBodySize int64
	version     string
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
