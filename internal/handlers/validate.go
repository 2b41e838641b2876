package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"taskService/internal/handlers/dto"

	"github.com/go-chi/render"
)

var errNotObject = errors.New("body must be a JSON object or array")

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeTaskRequest reads the body only when it is declared as JSON. Any other
// body, no body, or a JSON array yields a request with every field missing.
func decodeTaskRequest(r *http.Request) (dto.TaskRequest, error) {
	var request dto.TaskRequest
	if r.Body == nil || !checkContentType(r, "application/json") {
		return request, nil
	}
	defer r.Body.Close()

	var raw json.RawMessage
	if err := render.DecodeJSON(r.Body, &raw); err != nil {
		if errors.Is(err, io.EOF) {
			return request, nil
		}
		return request, err
	}

	switch trimmed := bytes.TrimSpace(raw); trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &request); err != nil {
			return dto.TaskRequest{}, err
		}
	case '[':
	default:
		return request, errNotObject
	}
	return request, nil
}
