package handler

import (
	"net/http"

	"customer-service/internal/api/handler/dto"
	mw "customer-service/internal/api/middleware"
)

// Ping handles GET /api/ping
// @Summary Authenticated ping
// @Description Echoes the caller's identity. Useful to check a bearer token.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.PingResponse "pong"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Router /api/ping [get]
// @Security BearerAuth
func Ping(w http.ResponseWriter, r *http.Request) {
	resp := dto.PingResponse{Message: "pong"}
	if claims, ok := mw.ClaimsFromContext(r.Context()); ok {
		resp.Subject = claims.Subject
		resp.Role = claims.Role
	}
	respondJSON(w, http.StatusOK, resp)
}

// Health handles GET /health
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
