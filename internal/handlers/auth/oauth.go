package auth

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"

	"elite_market/internal/auth"
	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/utils"
)

// Logins maps an OAuth identity onto a profile.
type Logins interface {
	Login(ctx context.Context, email, name string) (*models.Profile, error)
}

// CompleteFunc finishes the provider exchange; gothic.CompleteUserAuth in production.
type CompleteFunc func(w http.ResponseWriter, r *http.Request) (goth.User, error)

type CallbackConfig struct {
	JWTSecret     string
	SecureCookies bool
	// RedirectURL is where the browser lands once logged in.
	RedirectURL string
	Now         func() time.Time
}

func provider(c *gin.Context) string {
	if p := c.Query("provider"); p != "" {
		return p
	}
	return auth.DefaultProvider
}

// HandleLogin starts the consent flow with ?provider= (google by default).
func HandleLogin(c *gin.Context) {
	c.Request = gothic.GetContextWithProvider(c.Request, provider(c))
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// HandleCallback completes the exchange, upserts the profile, sets the
// auth_token cookie and redirects to the storefront.
func HandleCallback(logins Logins, complete CompleteFunc, cfg CallbackConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = gothic.GetContextWithProvider(c.Request, provider(c))

		user, err := complete(c.Writer, c.Request)
		if err != nil {
			log.Printf("❌ OAuth callback: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "login failed", "code": "oauth_failed"})
			return
		}

		name := user.Name
		if name == "" {
			name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
		profile, err := logins.Login(c.Request.Context(), user.Email, name)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}

		token, err := utils.GenerateJWT(cfg.JWTSecret, *profile, cfg.Now())
		if err != nil {
			handlers.RespondError(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AuthCookie, token, int(utils.TokenTTL.Seconds()), "/", "", cfg.SecureCookies, true)
		log.Printf("✅ %s logged in with %s", profile.Email, user.Provider)
		c.Redirect(http.StatusFound, strings.TrimRight(cfg.RedirectURL, "/")+"/")
	}
}

// HandleLogout drops the auth cookie.
func HandleLogout(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.AuthCookie, "", -1, "/", "", secure, true)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
