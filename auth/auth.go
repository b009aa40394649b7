package auth

import (
	"encoding/gob"
	"net/http"

	"github.com/Sampa-07/cyber-training/config"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/argon2"
)

var Store *sessions.CookieStore

const SessionName = "cybertrain-session"

// DeriveKey stretches the configured session secret into a 32-byte key.
// Argon2id parameters: 1 pass, 64MB memory, 4 threads.
func DeriveKey(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, 1, 64*1024, 4, 32)
}

func InitStore() {
	// Separate keys for cookie signing (HMAC) and content encryption (AES)
	authKey := DeriveKey(config.AppConfig.SessionKey, []byte("cybertrain-auth"))
	encKey := DeriveKey(config.AppConfig.SessionKey, []byte("cybertrain-encryption"))

	Store = sessions.NewCookieStore(authKey, encKey)

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

func GetUserID(r *http.Request) int {
	session, _ := Store.Get(r, SessionName)
	if id, ok := session.Values["userID"].(int); ok {
		return id
	}
	return 0
}

func GetUsername(r *http.Request) string {
	session, _ := Store.Get(r, SessionName)
	if name, ok := session.Values["username"].(string); ok {
		return name
	}
	return ""
}

func SetSession(w http.ResponseWriter, r *http.Request, userID int, username string) {
	session, _ := Store.Get(r, SessionName)
	session.Values["userID"] = userID
	session.Values["username"] = username
	session.Save(r, w)
}

func ClearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

// FlashMessage is a one-shot notice shown on the next rendered page.
// Category is "success" or "danger" and maps to a CSS class.
type FlashMessage struct {
	Category string
	Message  string
}

func init() {
	gob.Register(FlashMessage{})
}

func Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := Store.Get(r, SessionName)
	session.AddFlash(FlashMessage{Category: category, Message: message})
	session.Save(r, w)
}

// Flashes drains queued messages.
func Flashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	session, _ := Store.Get(r, SessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(r, w)
	}
	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(FlashMessage); ok {
			out = append(out, m)
		}
	}
	return out
}
