// internal/httpserver/player.go
//
// Player identity for guests.
// A player ID is a random identifier carried in an HS256 JWT ("sub" claim),
// stored in an HttpOnly cookie or sent as "Authorization: Bearer <token>".
// Requests without a valid token are issued a fresh one; stats are keyed by
// the player ID.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type ctxPlayerKey struct{}

// playerTokens signs and verifies player tokens.
type playerTokens struct {
	secret []byte
	cookie string
	ttl    time.Duration
}

func newPlayerTokens(secret, cookie string, days int) *playerTokens {
	if days <= 0 {
		days = 180
	}
	if cookie == "" {
		cookie = "wordle_player"
	}
	return &playerTokens{
		secret: []byte(secret),
		cookie: cookie,
		ttl:    time.Duration(days) * 24 * time.Hour,
	}
}

// sign creates an HS256 JWT for playerID.
func (p *playerTokens) sign(playerID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(p.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(p.secret)
	return ss, exp, err
}

// parse validates a token and returns its player ID.
func (p *playerTokens) parse(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("player token: missing subject")
	}
	return claims.Subject, nil
}

// fromRequest extracts a token from the Authorization header or cookie.
func (p *playerTokens) fromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(p.cookie); err == nil {
		return c.Value
	}
	return ""
}

// withPlayer puts the caller's player ID in the request context, issuing a
// new token cookie when none (or an invalid one) was presented.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if tok := s.player.fromRequest(r); tok != "" {
			var err error
			if id, err = s.player.parse(tok); err != nil {
				log.Debug().Err(err).Msg("reject player token")
			}
		}
		if id == "" {
			id = genID()
			tok, exp, err := s.player.sign(id, time.Now())
			if err != nil {
				log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     s.player.cookie,
				Value:    tok,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  exp,
			})
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerID returns the player ID installed by withPlayer.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
