package auth

import (
	"net/http"

	"github.com/antonlindstrom/pgstore"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "casevault_session"

	keyName         = "user_name"
	keyEmail        = "user_email"
	keyPicture      = "user_picture"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SessionUser is the transient copy of the authenticated user kept in
// the server-side session record. The document store owns the
// authoritative profile; the tokens here are what later Drive calls
// are made with.
type SessionUser struct {
	Name         string
	Email        string
	Picture      string
	AccessToken  string
	RefreshToken string
}

func NewStore(dbURL string, keyPairs ...[]byte) (*pgstore.PGStore, error) {
	store, err := pgstore.NewPGStore(dbURL, keyPairs...)
	if err != nil {
		return nil, err
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return store, nil
}

func GetSession(store sessions.Store, r *http.Request) (*sessions.Session, error) {
	return store.Get(r, SessionName)
}

// UserFromSession reports whether the session belongs to a completed
// login. A record without an email is treated as no session at all.
func UserFromSession(session *sessions.Session) (SessionUser, bool) {
	email, ok := session.Values[keyEmail].(string)
	if !ok || email == "" {
		return SessionUser{}, false
	}

	name, _ := session.Values[keyName].(string)
	picture, _ := session.Values[keyPicture].(string)
	accessToken, _ := session.Values[keyAccessToken].(string)
	refreshToken, _ := session.Values[keyRefreshToken].(string)

	return SessionUser{
		Name:         name,
		Email:        email,
		Picture:      picture,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, true
}

// SetSessionUser overwrites the session record wholesale.
func SetSessionUser(session *sessions.Session, user SessionUser) {
	session.Values[keyName] = user.Name
	session.Values[keyEmail] = user.Email
	session.Values[keyPicture] = user.Picture
	session.Values[keyAccessToken] = user.AccessToken
	session.Values[keyRefreshToken] = user.RefreshToken
}
