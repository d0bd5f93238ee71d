package auth

import "net/http"

// CookieName is the session cookie's name.
const CookieName = "session"

// cookieMaxAge matches sessionTTL in seconds.
const cookieMaxAge = 28800

// NewSessionCookie wraps a signed credential in a hardened cookie:
// HttpOnly keeps it away from scripts, Secure keeps it off plain HTTP,
// and SameSite=Lax still allows the top-level redirects of the OAuth flows.
func NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie returns a cookie that removes the session credential
// from the client.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
