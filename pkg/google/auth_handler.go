package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agroplan/agroplan/internal/config"
	"github.com/agroplan/agroplan/internal/rest"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

var ErrUnauthenticated = errors.New("google authentication required")

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// GoogleAuth keeps a single Sheets token for the installation. The app is
// single-tenant; one connected Google account exports for everyone.
type GoogleAuth struct {
	db          *pgxpool.Pool
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *pgxpool.Pool, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	return &GoogleAuth{db: db, oauthConfig: oauthConfig}
}

func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_, err := g.db.Exec(r.Context(), "DELETE FROM google_sheets_auth")
	if err != nil {
		log.Errorf("failed to delete old Google auth row: %v", err)
		writeAuthError(w)
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	_, err = g.db.Exec(r.Context(), "INSERT INTO google_sheets_auth (nonce) VALUES ($1)", stateNonce)
	if err != nil {
		log.Errorf("failed to store Google auth nonce: %v", err)
		writeAuthError(w)
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(googleAuthRedirect{RedirectUrl: u}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state parameter", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	_, err = g.db.Exec(r.Context(),
		"UPDATE google_sheets_auth SET access_token = $1, refresh_token = $2, expiry = $3 WHERE nonce = $4",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), nonce)
	if err != nil {
		log.Errorf("unable to store Google auth token for nonce: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := g.db.Exec(r.Context(), "DELETE FROM google_sheets_auth"); err != nil {
		log.Errorf("failed to delete Google auth row: %v", err)
		writeAuthError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GoogleAuth) getToken(ctx context.Context) (*oauth2.Token, error) {
	var token oauth2.Token
	var expiryTimestamp int64
	err := g.db.QueryRow(ctx,
		"SELECT access_token, refresh_token, expiry FROM google_sheets_auth WHERE access_token IS NOT NULL").
		Scan(&token.AccessToken, &token.RefreshToken, &expiryTimestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %w", err)
	}
	token.Expiry = time.Unix(expiryTimestamp, 0)
	return &token, nil
}

func (g *GoogleAuth) getClient(ctx context.Context) (*http.Client, error) {
	token, err := g.getToken(ctx)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	return g.oauthConfig.Client(ctx, token), nil
}

func writeAuthError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error: "Failed to handle Google authentication",
	}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
