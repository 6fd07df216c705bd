// Package controllers holds the HTTP handlers. Each handler binds the
// request, delegates to a service, and writes the JSON envelope; all error
// mapping goes through the central responder.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/config"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/auth"
	"github.com/shashiranjanraj/zaika/pkg/bind"
	"github.com/shashiranjanraj/zaika/pkg/middleware"
	"github.com/shashiranjanraj/zaika/pkg/response"
	"github.com/shashiranjanraj/zaika/pkg/validate"
)

// AuthController serves the /auth routes.
type AuthController struct {
	svc *services.AuthService
}

// NewAuthController wires an AuthController.
func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup handles POST /auth/signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	u, token, err := c.svc.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	setTokenCookie(w, token)
	response.Created(w, "User registered successfully", map[string]interface{}{
		"user":  u.Redacted(),
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	u, token, err := c.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	setTokenCookie(w, token)
	response.Success(w, "Login successful", map[string]interface{}{
		"user":  u.Redacted(),
		"token": token,
	})
}

type googleRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// Google handles POST /auth/google.
func (c *AuthController) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	u, token, err := c.svc.GoogleSignIn(r.Context(), req.IDToken)
	if err != nil {
		response.Error(w, err)
		return
	}

	setTokenCookie(w, token)
	response.Success(w, "Login successful", map[string]interface{}{
		"user":  u.Redacted(),
		"token": token,
	})
}

// Me handles GET /auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Error(w, apperr.Auth("No token provided"))
		return
	}

	u, err := c.svc.Profile(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "", map[string]interface{}{"user": u.Redacted()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword handles PUT /auth/change-password.
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var req changePasswordRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	if err := c.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Password updated successfully", nil)
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateEmail handles PUT /auth/update-email.
func (c *AuthController) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var req updateEmailRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	u, err := c.svc.UpdateEmail(r.Context(), userID, req.Email)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Email updated successfully", map[string]interface{}{"user": u.Redacted()})
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
}

// UpdateUsername handles PUT /auth/update-username.
func (c *AuthController) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var req updateUsernameRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	u, err := c.svc.UpdateUsername(r.Context(), userID, req.Username)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Username updated successfully", map[string]interface{}{"user": u.Redacted()})
}

type updateAddressRequest struct {
	Address addressPayload `json:"address" validate:"required"`
}

type addressPayload struct {
	HouseName string `json:"houseName" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required,digits=6"`
	Country   string `json:"country" validate:"nullable"`
}

func (p addressPayload) model() models.Address {
	return models.Address{
		HouseName: p.HouseName,
		Street:    p.Street,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		Country:   p.Country,
	}
}

// UpdateAddress handles PUT /auth/address.
func (c *AuthController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var req updateAddressRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if errs := validateAddress(req.Address); errs != "" {
		response.Error(w, apperr.Validation(errs))
		return
	}

	u, err := c.svc.UpdateAddress(r.Context(), userID, req.Address.model())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Address updated successfully", map[string]interface{}{"user": u.Redacted()})
}

// DeleteAccount handles DELETE /auth/delete-account.
func (c *AuthController) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	if err := c.svc.DeleteAccount(r.Context(), userID); err != nil {
		response.Error(w, err)
		return
	}

	clearTokenCookie(w)
	response.Success(w, "Account deleted successfully", nil)
}

// validateAddress runs the tag rules on the nested address payload, which
// the top-level bind cannot reach.
func validateAddress(p addressPayload) string {
	if errs := validate.Struct(&p); validate.HasErrors(errs) {
		return validate.Join(errs)
	}
	return ""
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   config.Production(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.Production(),
		SameSite: http.SameSiteLaxMode,
	})
}
