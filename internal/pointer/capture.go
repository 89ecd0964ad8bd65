// Package pointer routes mouse input to a single owner while a gesture such
// as a scrollbar drag is in progress, regardless of where the pointer goes.
package pointer

import "github.com/rungrid/rungrid/internal/log"

// Capture holds at most one owner. The zero value is ready to use.
type Capture struct {
	owner         string
	registrations int
}

// Acquire makes owner the capture target. It returns false when owner already
// holds the capture or another owner does.
func (c *Capture) Acquire(owner string) bool {
	if c.owner != "" {
		if c.owner != owner {
			log.Debug(log.CatEvents, "Pointer capture refused", "owner", owner, "held_by", c.owner)
		}
		return false
	}
	c.owner = owner
	c.registrations++
	return true
}

// Release drops the capture if owner holds it.
func (c *Capture) Release(owner string) {
	if c.owner == owner {
		c.owner = ""
	}
}

// Owner returns the current owner, or "" when idle.
func (c *Capture) Owner() string { return c.owner }

// Active reports whether any owner holds the capture.
func (c *Capture) Active() bool { return c.owner != "" }

// Held reports whether owner holds the capture.
func (c *Capture) Held(owner string) bool { return owner != "" && c.owner == owner }

// Registrations counts successful acquisitions over the capture's lifetime.
func (c *Capture) Registrations() int { return c.registrations }
