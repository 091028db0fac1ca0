// Package intent keeps the buyer's pending purchase in a signed cookie so it
// survives the round trip through the hosted payment page.
package intent

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"elite_market/internal/models"
)

const (
	sessionName = "elite_checkout"
	// The hosted page may take a while; an hour is plenty.
	maxAge = 60 * 60
)

type Store struct {
	store sessions.Store
}

// NewStore takes gorilla/sessions key pairs: an HMAC key, optionally followed
// by an AES key to encrypt the cookie.
func NewStore(secure bool, keyPairs ...[]byte) *Store {
	cs := sessions.NewCookieStore(keyPairs...)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// Save overwrites whatever intent the device held.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, in models.PendingPurchaseIntent) error {
	sess, _ := s.store.Get(r, sessionName)
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}
	sess.Values[models.IntentKey] = string(raw)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save intent: %w", err)
	}
	return nil
}

// Load returns nil when the device holds no usable intent.
func (s *Store) Load(r *http.Request) *models.PendingPurchaseIntent {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		log.Printf("⚠️ Unreadable checkout cookie: %v", err)
		return nil
	}
	raw, ok := sess.Values[models.IntentKey].(string)
	if !ok {
		return nil
	}

	var in models.PendingPurchaseIntent
	if err := json.Unmarshal([]byte(raw), &in); err != nil || !in.Valid() {
		log.Printf("⚠️ Discarding malformed pending order: %q", raw)
		return nil
	}
	return &in
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, models.IntentKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear intent: %w", err)
	}
	return nil
}
