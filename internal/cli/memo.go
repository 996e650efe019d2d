package cli

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// traceMemo remembers generated traces for the lifetime of a player
// session, so flipping between settings does not recompute them.
type traceMemo struct {
	cache *gocache.Cache
}

func newTraceMemo() *traceMemo {
	return &traceMemo{cache: gocache.New(30*time.Minute, 5*time.Minute)}
}

func memoKey(id cipher.ID, req cipher.Request) string {
	return string(id) + "\x00" + string(req.Mode) + "\x00" + req.Key + "\x00" + req.Text
}

// get returns the trace for (g, req), generating and storing it on a miss.
func (m *traceMemo) get(g cipher.Generator, req cipher.Request, generate func() cipher.Trace) (cipher.Trace, bool) {
	key := memoKey(g.ID(), req)

	if v, ok := m.cache.Get(key); ok {
		if t, ok := v.(cipher.Trace); ok {
			return t, true
		}
	}

	t := generate()
	m.cache.SetDefault(key, t)

	return t, false
}

func (m *traceMemo) len() int {
	return m.cache.ItemCount()
}
