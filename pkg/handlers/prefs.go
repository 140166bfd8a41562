package handlers

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/tideline/pkg/data"
	"github.com/spencer-p/tideline/pkg/metrics"
	"github.com/spencer-p/tideline/pkg/station"
	"github.com/spencer-p/tideline/pkg/units"
)

const (
	sessionName     = "tideline"
	sessionUserName = "name"
	sessionStation  = "station"
	sessionUnits    = "units"
	sessionMaxTide  = "maxTide"
	userID          = "userid"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.

	fallbackKey = "deadbeef"
)

// Prefs is the client's view of their saved preferences.
type Prefs struct {
	Name    string   `json:"name,omitempty"`
	Station string   `json:"station,omitempty"`
	Units   string   `json:"units"`
	MaxTide *float64 `json:"maxTide,omitempty"`
}

// newStore builds the cookie store. The session key authenticates cookies
// and the encryption key, stretched with PBKDF2, encrypts them.
func newStore(sessionKey, encryptionKey string) *sessions.CookieStore {
	if sessionKey == "" {
		sessionKey = fallbackKey
	}
	if encryptionKey == "" {
		encryptionKey = fallbackKey
	}
	blockKey := pbkdf2.Key([]byte(encryptionKey), []byte{}, 4096, 32, sha1.New)
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			blockKey,
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   true,
			HttpOnly: true,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

// sessionString reads one string preference out of the request's session.
func (h *Handlers) sessionString(r *http.Request, key string) string {
	session, _ := h.store.Get(r, sessionName)
	v, _ := session.Values[key].(string)
	return v
}

// resolveUnits picks the measurement system for a request: an explicit
// units parameter wins, then the session preference, then imperial.
func (h *Handlers) resolveUnits(r *http.Request) units.System {
	v := r.URL.Query().Get("units")
	if v == "" {
		v = h.sessionString(r, sessionUnits)
	}
	sys, err := units.ParseSystem(v)
	if err != nil {
		return units.Imperial
	}
	return sys
}

// lowTideOptions loads the session's saved tide threshold. Missing users
// and a missing database are fine; the zero options suit everyone.
func (h *Handlers) lowTideOptions(r *http.Request) station.LowTideOptions {
	opts := station.LowTideOptions{}

	session, _ := h.store.Get(r, sessionName)
	metrics.ObserveUserRequest(session.Values[userID])

	if v, ok := session.Values[sessionMaxTide].(float64); ok {
		opts.MaxHeight = &v
	}
	if h.db == nil {
		return opts
	}
	id, ok := session.Values[userID]
	if !ok {
		return opts
	}

	// The db lookup can fail here, and that's fine. The session values
	// carry us.
	var user data.User
	if tx := h.db.First(&user, id); tx.Error != nil {
		h.log.Warn("Failed to find user", zap.Any("id", id), zap.Error(tx.Error))
		return opts
	}
	// Log the time since we last saw the user.
	if !user.LastSeen.IsZero() {
		h.log.Info("Returning user",
			zap.Uint("id", user.ID),
			zap.String("name", user.Name),
			zap.Duration("sinceLastSeen", time.Since(user.LastSeen)))
	}
	user.LastSeen = time.Now()
	h.db.Save(&user)

	opts.MaxHeight = user.MaxTide
	return opts
}

func (h *Handlers) makeConfig() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.store.Get(r, sessionName)
		metrics.ObserveUserRequest(session.Values[userID])

		if r.Method == http.MethodGet {
			session.Save(r, w)
			writeJSON(w, prefsFromSession(session))
			return
		}

		// The remainder assumes method is POST.
		if err := r.ParseForm(); err != nil {
			h.log.Error("Failed to parse form", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Failed to parse form: %v", err)
			return
		}

		var user data.User
		if h.db != nil {
			if id, ok := session.Values[userID].(uint); ok {
				// Read-modify-write if the session carries an ID.
				// Otherwise db.Save generates one below.
				h.db.First(&user, id)
			}
		}

		if name := r.PostForm.Get("name"); name != "" {
			session.Values[sessionUserName] = name
			user.Name = name
		}
		if id := r.PostForm.Get("station"); id != "" {
			session.Values[sessionStation] = id
			user.Station = id
		}
		if sys, err := units.ParseSystem(r.PostForm.Get("units")); err == nil {
			session.Values[sessionUnits] = sys.String()
			user.Units = sys.String()
		}
		if f, err := strconv.ParseFloat(r.PostForm.Get("max_tide"), 64); err == nil {
			session.Values[sessionMaxTide] = f
			user.MaxTide = &f
		} else {
			delete(session.Values, sessionMaxTide)
			user.MaxTide = nil
		}

		if h.db != nil {
			// Log the time since the last update.
			if user.UpdatedAt.IsZero() {
				h.log.Info("Saving a new user", zap.String("name", user.Name))
			} else {
				h.log.Info("Updating user",
					zap.Uint("id", user.ID),
					zap.String("name", user.Name),
					zap.Duration("sinceLastUpdate", time.Since(user.UpdatedAt)))
			}
			user.LastSeen = time.Now()
			if tx := h.db.Save(&user); tx.Error != nil {
				h.log.Error("Failed to save preferences", zap.Error(tx.Error))
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "Failed to save preferences: %v", tx.Error)
				return
			}
			session.Values[userID] = user.ID
		}

		if err := session.Save(r, w); err != nil {
			h.log.Error("Failed to save session", zap.Error(err))
		}
		writeJSON(w, prefsFromSession(session))
	})
}

// prefsFromSession renders the preferences currently in the session.
func prefsFromSession(session *sessions.Session) Prefs {
	p := Prefs{Units: units.Imperial.String()}
	if v, ok := session.Values[sessionUserName].(string); ok {
		p.Name = v
	}
	if v, ok := session.Values[sessionStation].(string); ok {
		p.Station = v
	}
	if v, ok := session.Values[sessionUnits].(string); ok {
		p.Units = v
	}
	if v, ok := session.Values[sessionMaxTide].(float64); ok {
		p.MaxTide = &v
	}
	return p
}
