package controllers

import (
	"encoding/json"
	"net/http"

	"lingo-guard/app/dto"
	"lingo-guard/app/errs"
	"lingo-guard/app/middleware"
	"lingo-guard/app/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed"})
		return
	}
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	u, token, err := c.Auth.Login(r.Context(), middleware.ClientKey(r), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	role := u.Role
	if role == "" {
		role = "student"
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   token,
		Role:    role,
		User:    dto.SessionUser{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed"})
		return
	}
	var req dto.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	u, err := c.Auth.Register(r.Context(), middleware.ClientKey(r), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "Registration successful!",
		User:    dto.RegisteredUser{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.HTTPStatus(err), dto.ErrorResponse{
		Error:      errs.Message(err),
		RetryAfter: errs.RetryAfterMinutes(err),
	})
}
