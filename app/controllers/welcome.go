package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/zaika/pkg/response"
)

// Welcome handles GET / and GET /api/v1.
func Welcome(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "Welcome to the Zaika API", nil)
}
