package main

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Simplici0/toolcost/internal/metrics"
	"github.com/Simplici0/toolcost/internal/session"
)

const sessionCookieName = "toolcost_session"

type sessionIDKey struct{}

// cookieSigner signs session ids so a client cannot pick another session's id.
type cookieSigner struct {
	secret []byte
}

func newCookieSigner(secret string) *cookieSigner {
	if secret != "" {
		return &cookieSigner{secret: []byte(secret)}
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("generate session secret: " + err.Error())
	}
	slog.Warn("SESSION_SECRET is empty, sessions will not survive a restart")
	return &cookieSigner{secret: buf}
}

func (c *cookieSigner) sign(id string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(id))
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return payload + "." + hex.EncodeToString(mac.Sum(nil))
}

func (c *cookieSigner) verify(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}

	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

func (c *cookieSigner) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    c.sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionMiddleware attaches the caller's session id to the request context,
// issuing a new cookie when the current one is missing or forged.
func (s *server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			id, _ = s.cookies.verify(cookie.Value)
		}
		if id == "" {
			id = session.NewID()
			s.cookies.setCookie(w, id)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionIDKey{}, id)))
		metrics.SetActiveSessions(s.sessions.Len())
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey{}).(string)
	return id
}
