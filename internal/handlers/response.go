package handlers

import (
	"net/http"

	"taskService/internal/handlers/dto"

	"github.com/go-chi/render"
)

func responseWithJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

func responseWithMessage(w http.ResponseWriter, r *http.Request, code int, message string) {
	responseWithJSON(w, r, code, dto.MessageResponse{Message: message})
}

func responseWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	responseWithJSON(w, r, code, dto.ErrorResponse{Error: message})
}
