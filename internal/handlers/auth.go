package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/services"
	"github.com/daybook/daybook-backend/pkg/utils"
)

// Signup/Signin Request
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
}

// UpdateEmailRequest changes the account's contact address
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (req UpdateEmailRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

// UpdatePasswordRequest changes the account credential
type UpdatePasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Auth Response
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

// Signup handles user registration with email and password
func Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if email is already registered
	var existingID uuid.UUID
	err := database.PostgresDB.QueryRow(
		"SELECT id FROM users WHERE LOWER(email) = $1",
		email,
	).Scan(&existingID)
	if err == nil {
		writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Email is already registered"})
		return
	} else if err != sql.ErrNoRows {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to hash password"})
		return
	}

	userID := uuid.New()
	_, err = database.PostgresDB.Exec(`
		INSERT INTO users (id, email, password_hash, created_at, updated_at, is_active)
		VALUES ($1, $2, $3, NOW(), NOW(), TRUE)
	`, userID, email, hashedPassword)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create account"})
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User: map[string]interface{}{
			"id":         userID.String(),
			"email":      email,
			"created_at": time.Now(),
		},
		Token: token,
	})
}

// Signin handles user login
func Signin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var userID uuid.UUID
	var passwordHash string
	var isActive bool
	var createdAt time.Time

	err := database.PostgresDB.QueryRow(`
		SELECT id, password_hash, created_at, is_active
		FROM users
		WHERE LOWER(email) = $1
	`, email).Scan(&userID, &passwordHash, &createdAt, &isActive)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		} else {
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		}
		return
	}

	if !isActive {
		writeJSON(w, http.StatusForbidden, AuthResponse{Success: false, Message: "Account is inactive"})
		return
	}

	valid, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !valid {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User: map[string]interface{}{
			"id":         userID.String(),
			"email":      email,
			"created_at": createdAt,
		},
		Token: token,
	})
}

// Signout invalidates the presented session
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		unauthorized(w)
		return
	}

	if err := services.InvalidateSession(token); err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to sign out"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Signed out"})
}

// GetMe returns the identity behind the presented session token
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var email string
	var createdAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT email, created_at FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&email, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			unauthorized(w)
		} else {
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "OK",
		User: map[string]interface{}{
			"id":         userID.String(),
			"email":      email,
			"created_at": createdAt,
		},
	})
}

// UpdateEmail changes the account email. The users row and the mirrored
// profiles row are updated in one transaction so they cannot drift apart.
func UpdateEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx, err := database.PostgresDB.Begin()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2
	`, email, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Email is already registered"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to update email"})
		return
	}

	// Keep the profile mirror in sync; a user who skipped onboarding has no
	// profile row and that is fine
	_, err = tx.Exec(`
		UPDATE profiles SET email = $1, updated_at = NOW() WHERE id = $2
	`, email, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to update email"})
		return
	}

	if err = tx.Commit(); err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}

	services.InvalidateCachedProfile(userID.String())

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Email updated successfully",
		User: map[string]interface{}{
			"id":    userID.String(),
			"email": email,
		},
	})
}

// UpdatePassword changes the account credential. The confirmation mismatch
// check runs before any database access; on success every session for the
// user is rotated and a fresh token is returned.
func UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "New passwords do not match"})
		return
	}
	if len(req.NewPassword) < 8 {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to hash password"})
		return
	}

	_, err = database.PostgresDB.Exec(`
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, hashedPassword, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to update password"})
		return
	}

	// Rotating the session invalidates any other device still signed in
	token, err := services.CreateSession(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to refresh session"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Password updated successfully",
		Token:   token,
	})
}
