// Package session keeps per-browser state in a single HMAC-signed
// cookie: the logged-in identity and pending flash messages. The
// payload is a JWT, so tampering invalidates the whole cookie and the
// request falls back to an empty session.
package session

import (
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cookieName = "repohub_session"

type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// State is the mutable view of one browser session. Load it, change
// it, then Save it back.
type State struct {
	UserID   uint
	Username string
	Flashes  []Flash
}

func (st *State) AddFlash(message, category string) {
	st.Flashes = append(st.Flashes, Flash{Message: message, Category: category})
}

func (st *State) SetUser(id uint, username string) {
	st.UserID = id
	st.Username = username
}

type claims struct {
	UserID   uint    `json:"uid,omitempty"`
	Username string  `json:"uname,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	Secret []byte
	Issuer string
	ExpMin int
}

func NewManager(secret, issuer string, expMin int) *Manager {
	return &Manager{Secret: []byte(secret), Issuer: issuer, ExpMin: expMin}
}

// Load returns the session carried by the request, or an empty one
// when the cookie is missing, expired, or fails verification.
func (m *Manager) Load(r *http.Request) *State {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return &State{}
	}
	token, err := jwt.ParseWithClaims(c.Value, &claims{}, func(t *jwt.Token) (interface{}, error) { return m.Secret, nil })
	if err != nil || !token.Valid {
		return &State{}
	}
	cl, ok := token.Claims.(*claims)
	if !ok {
		return &State{}
	}
	return &State{UserID: cl.UserID, Username: cl.Username, Flashes: cl.Flashes}
}

// Save signs the state and sets the cookie on the response.
func (m *Manager) Save(w http.ResponseWriter, st *State) error {
	now := time.Now()
	cl := claims{
		UserID: st.UserID, Username: st.Username, Flashes: st.Flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(m.ExpMin) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// PopFlashes drains the pending flash messages and persists the
// cleared session.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	st := m.Load(r)
	if len(st.Flashes) == 0 {
		return nil
	}
	flashes := st.Flashes
	st.Flashes = nil
	_ = m.Save(w, st)
	return flashes
}
