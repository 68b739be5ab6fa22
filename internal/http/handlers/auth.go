package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret []byte
}

// AuthUser is the user payload returned on login and registration.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := h.DB.QueryRow(`
        SELECT id, COALESCE(name,''), email, password_hash
        FROM users
        WHERE email = ?
    `, strings.ToLower(strings.TrimSpace(req.Email))).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&passwordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token signing failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "email and a password of at least 8 characters are required", nil)
		return
	}

	var exists int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "password hashing failed", err)
		return
	}

	res, err := h.DB.Exec(`
        INSERT INTO users (name, email, password_hash, created_at)
        VALUES (?, ?, ?, NOW())
    `, strings.TrimSpace(req.Name), email, string(hash))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "user insert failed", err)
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user": AuthUser{
			ID:    id,
			Name:  strings.TrimSpace(req.Name),
			Email: email,
		},
	})
}
