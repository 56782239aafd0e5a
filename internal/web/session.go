package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/HyungjinO/k-novel-dashboard/dashboard"
)

const sessionCookieName = "compass_session"

// sessionCodec signs the viewer's selection into a cookie so it survives
// navigation between pages.
type sessionCodec struct {
	key    []byte
	secure bool
}

func newSessionCodec(key []byte, secure bool) (*sessionCodec, error) {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
	}
	return &sessionCodec{key: key, secure: secure}, nil
}

// read returns the stored selection, or the default one when the cookie is
// absent, malformed or signed with another key.
func (c *sessionCodec) read(r *http.Request) dashboard.Session {
	def := dashboard.DefaultSession()
	ck, err := r.Cookie(sessionCookieName)
	if err != nil || ck.Value == "" {
		return def
	}
	payload, sig, ok := strings.Cut(ck.Value, ".")
	if !ok {
		return def
	}
	body, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return def
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, c.sign(body)) {
		return def
	}
	s := def
	if err := json.Unmarshal(body, &s); err != nil {
		return def
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

func (c *sessionCodec) write(w http.ResponseWriter, s dashboard.Session) {
	body, err := json.Marshal(s)
	if err != nil {
		return
	}
	value := base64.RawURLEncoding.EncodeToString(body) + "." + base64.RawURLEncoding.EncodeToString(c.sign(body))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func (c *sessionCodec) sign(body []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(body)
	return mac.Sum(nil)
}
