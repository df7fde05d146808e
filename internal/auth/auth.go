package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lancer-lens/booking-api/internal/config"
	"github.com/lancer-lens/booking-api/internal/models"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	GoogleAuthorizeEndpoint = "https://accounts.google.com/o/oauth2/auth"
	GoogleTokenEndpoint     = "https://oauth2.googleapis.com/token"
	GoogleUserInfoAPI       = "https://www.googleapis.com/oauth2/v2/userinfo"

	TokenDuration = 24 * time.Hour

	authCookieName  = "auth_token"
	stateCookieName = "oauth_state"
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
	admins      map[string]struct{}
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	// The allow-list is evaluated against this set for the lifetime of
	// the process; there is no runtime administration of it.
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  GoogleAuthorizeEndpoint,
				TokenURL: GoogleTokenEndpoint,
			},
		},
		db:     db,
		cfg:    cfg,
		admins: admins,
	}
}

// IsAdmin reports whether an email is on the configured allow-list.
func (h *AuthHandler) IsAdmin(email string) bool {
	_, ok := h.admins[strings.ToLower(email)]
	return ok
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Path:     "/",
	})
	url := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	// Sign-in failures are advisory, never fatal: the registrant retries
	// by starting the login flow again.
	if errCode := r.URL.Query().Get("error"); errCode != "" {
		http.Error(w, "Sign-in was cancelled or blocked ("+errCode+"). Try again, or use a different browser.", http.StatusBadRequest)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "Sign-in session expired. Try again.", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)

	resp, err := client.Get(GoogleUserInfoAPI)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := h.db.FirstOrInit(&user, models.User{GoogleID: googleUser.ID}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	user.Name = googleUser.Name
	user.Email = googleUser.Email
	user.Avatar = googleUser.Picture

	if err := h.db.Save(&user).Error; err != nil {
		http.Error(w, "Failed to save user", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    jwtToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})

	http.Redirect(w, r, h.cfg.FrontendURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// AuthInput is embedded by requests on protected operations so handlers
// can pass the raw Cookie header to Authorize.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie" required:"false"`
}

// Authorize validates the session cookie and returns the user's id.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	header := http.Header{}
	header.Add("Cookie", cookieHeader)
	req := http.Request{Header: header}
	cookie, err := req.Cookie(authCookieName)
	if err != nil {
		return 0, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	return uint(userIDFloat), nil
}

// CurrentUser resolves the session cookie to the full user row.
func (h *AuthHandler) CurrentUser(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: Unknown user")
	}
	return &user, nil
}

type MeRequest struct {
	AuthInput
}

type MeResponse struct {
	Body struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Avatar  string `json:"avatar"`
		IsAdmin bool   `json:"isAdmin"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.ID = user.GoogleID
	res.Body.Name = user.Name
	res.Body.Email = user.Email
	res.Body.Avatar = user.Avatar
	res.Body.IsAdmin = h.IsAdmin(user.Email)
	return res, nil
}
