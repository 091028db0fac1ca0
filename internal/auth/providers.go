// Package auth registers the OAuth providers buyers and sellers log in with.
package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"

	"elite_market/internal/config"
	"elite_market/internal/utils"
)

const (
	DefaultProvider = "google"
	// The OAuth state only has to survive the consent screen.
	stateMaxAge = 10 * 60
)

var ErrNoProviders = errors.New("no OAuth provider configured")

// CallbackURL is where the provider sends the user back to.
func CallbackURL(baseURL, provider string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/callback?provider=" + provider
}

// Setup installs the gothic state store and every provider with credentials.
// It returns the names of the providers now available.
func Setup(cfg *config.Config) ([]string, error) {
	hashKey, blockKey, err := utils.CookieKeys(cfg.SessionSecret, "oauth-state")
	if err != nil {
		return nil, err
	}
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   stateMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	var providers []goth.Provider
	var names []string
	if cfg.Google.ClientID != "" {
		providers = append(providers, google.New(cfg.Google.ClientID, cfg.Google.ClientSecret,
			CallbackURL(cfg.BaseURL, "google"), "email", "profile"))
		names = append(names, "google")
	}
	if cfg.Facebook.ClientID != "" {
		providers = append(providers, facebook.New(cfg.Facebook.ClientID, cfg.Facebook.ClientSecret,
			CallbackURL(cfg.BaseURL, "facebook"), "email"))
		names = append(names, "facebook")
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	goth.UseProviders(providers...)
	log.Printf("✅ OAuth providers: %s", strings.Join(names, ", "))
	return names, nil
}
