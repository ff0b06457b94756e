package cart

import (
	"net/http"
	"net/url"
	"time"

	"github.com/shashiranjanraj/lumina/config"
)

// Persister reads and writes the raw persisted cart representation for a
// single request/response pair. It is an interface so tests can swap the
// cookie for an in-memory fake.
type Persister interface {
	// Load returns the raw persisted value, or "" when absent.
	Load(r *http.Request) string
	// Save writes raw back to the client.
	Save(w http.ResponseWriter, raw string)
}

// Store is the single access path to the cart. Handlers load the cart from
// the incoming request, apply mutations, and save the result on the
// response; the cookie is the only authoritative copy.
type Store struct {
	persist Persister
	size    func() int // catalogue size, read per request
}

// NewStore builds a Store over the given persister.
// size is called on every Load so a reseeded catalogue is picked up.
func NewStore(p Persister, size func() int) *Store {
	return &Store{persist: p, size: size}
}

// Load decodes the cart carried by r, repairing or resetting corrupt values.
// It never fails: worst case is the empty cart.
func (s *Store) Load(r *http.Request) Items {
	return Decode(s.persist.Load(r), s.size())
}

// Save persists items on the response.
// Persistence is fire-and-forget: there is no acknowledgement from the
// client, and no retry.
func (s *Store) Save(w http.ResponseWriter, items Items) {
	s.persist.Save(w, Encode(items))
}

// CookiePersister stores the cart in a browser cookie.
type CookiePersister struct {
	Name string
	TTL  time.Duration
}

// NewCookiePersister builds a CookiePersister from configuration
// (CART_COOKIE_NAME, CART_COOKIE_DAYS).
func NewCookiePersister() *CookiePersister {
	return &CookiePersister{
		Name: config.CartCookieName(),
		TTL:  config.CartCookieTTL(),
	}
}

// Load returns the raw cookie value, or "" when the cookie is absent.
// The value is percent-decoded; a value that fails decoding is passed
// through raw and left for Decode to reject.
func (p *CookiePersister) Load(r *http.Request) string {
	c, err := r.Cookie(p.Name)
	if err != nil {
		return ""
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return raw
}

// Save writes the cart cookie: root path, 30-day expiry by default,
// SameSite=Lax. Not HttpOnly: the storefront's client script reads it to
// badge the cart icon without a round trip.
func (p *CookiePersister) Save(w http.ResponseWriter, raw string) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    url.QueryEscape(raw),
		Path:     "/",
		Expires:  time.Now().Add(p.TTL),
		MaxAge:   int(p.TTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
