package management

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

// Error codes carried in Response.Code.
const (
	CodeInstanceNotFound = "instance_not_found"
	CodePropertyNotFound = "property_not_found"
	CodeMalformedName    = "malformed_name"
	CodeInvalidKey       = "invalid_key"
)

// Response is the envelope for every management endpoint.
type Response struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Code      string          `json:"code,omitempty"`
}

// BeanStatus is the payload of GET /beans/{name}.
type BeanStatus struct {
	Name                   string `json:"name"`
	Ready                  bool   `json:"ready"`
	EmbeddedWebApplication bool   `json:"embedded_web_application"`
}

// PropertyValue is the payload of GET /beans/{name}/properties/{key}.
type PropertyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func okResponse(data any) (Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: "ok", Timestamp: time.Now().UTC(), Data: raw}, nil
}

func errorResponse(code, msg string) Response {
	return Response{Status: "error", Timestamp: time.Now().UTC(), Error: msg, Code: code}
}

// writeJSON encodes to a buffer first so encoding failures can still produce
// a 500 before headers are sent.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		http.Error(w, `{"status":"error","error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeData(w http.ResponseWriter, status int, data any) {
	resp, err := okResponse(data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("", "failed to encode response"))
		return
	}
	writeJSON(w, status, resp)
}
