// Package access decides which callers may act on an event based on its access tier.
package access

import (
	"errors"
	"eventsApi/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin privileges required")
)

// Principal is an authenticated caller. A nil *Principal is an anonymous request.
type Principal struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// CheckRSVP reports whether p may RSVP to event or list its RSVPs.
func CheckRSVP(event models.Event, p *Principal) error {
	switch event.Tier() {
	case models.TierPublic:
		return nil
	case models.TierProtected:
		if p == nil {
			return ErrUnauthenticated
		}
		return nil
	default:
		if p == nil {
			return ErrUnauthenticated
		}
		if !p.IsAdmin {
			return ErrForbidden
		}
		return nil
	}
}

// CheckCreate reports whether p may create event. Only admins create admin-tier events.
func CheckCreate(event models.Event, p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}

	if event.Tier() == models.TierAdmin && !p.IsAdmin {
		return ErrForbidden
	}

	return nil
}
