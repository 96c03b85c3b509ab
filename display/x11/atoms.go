package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// atomCache interns X atoms lazily and remembers the reverse mapping,
// safe for reuse across the life of the connection instead of a
// throwaway map literal per call.
type atomCache struct {
	xc *xgb.Conn

	mu     sync.Mutex
	byName map[string]xproto.Atom
	byAtom map[xproto.Atom]string
}

func newAtomCache(xc *xgb.Conn) *atomCache {
	return &atomCache{
		xc:     xc,
		byName: make(map[string]xproto.Atom),
		byAtom: make(map[xproto.Atom]string),
	}
}

func (c *atomCache) intern(name string) (uint32, error) {
	c.mu.Lock()
	if a, ok := c.byName[name]; ok {
		c.mu.Unlock()
		return uint32(a), nil
	}
	c.mu.Unlock()

	reply, err := xproto.InternAtom(c.xc, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: intern atom %q: %w", name, err)
	}

	c.mu.Lock()
	c.byName[name] = reply.Atom
	c.byAtom[reply.Atom] = name
	c.mu.Unlock()
	return uint32(reply.Atom), nil
}

func (c *atomCache) name(id xproto.Atom) (string, error) {
	c.mu.Lock()
	if name, ok := c.byAtom[id]; ok {
		c.mu.Unlock()
		return name, nil
	}
	c.mu.Unlock()

	reply, err := xproto.GetAtomName(c.xc, id).Reply()
	if err != nil {
		return "", fmt.Errorf("x11: get atom name: %w", err)
	}
	name := reply.Name

	c.mu.Lock()
	c.byName[name] = id
	c.byAtom[id] = name
	c.mu.Unlock()
	return name, nil
}
