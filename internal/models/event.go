package models

import "time"

type AccessTier string

const (
	TierPublic    AccessTier = "public"
	TierProtected AccessTier = "protected"
	TierAdmin     AccessTier = "admin"
)

type Event struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          time.Time  `json:"date"`
	Location      string     `json:"location"`
	Capacity      int        `json:"capacity"`
	IsPublic      bool       `json:"is_public"`
	RequiresAdmin bool       `json:"requires_admin"`
	CreatedBy     *int64     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	AccessTier    AccessTier `json:"access_tier"`
	RSVPCount     int        `json:"rsvp_count"`
	Attendees     []int64    `json:"attendees"`
}

// Tier reports who may RSVP. RequiresAdmin takes precedence over IsPublic.
func (e Event) Tier() AccessTier {
	switch {
	case e.RequiresAdmin:
		return TierAdmin
	case e.IsPublic:
		return TierPublic
	default:
		return TierProtected
	}
}

// ApplyRSVPs fills the derived fields. RSVPCount counts every RSVP, while
// Attendees only lists users who RSVPed as attending.
func (e *Event) ApplyRSVPs(rsvps []RSVP) {
	e.RSVPCount = len(rsvps)
	e.Attendees = make([]int64, 0, len(rsvps))

	for _, r := range rsvps {
		if r.Attending && r.UserID != nil {
			e.Attendees = append(e.Attendees, *r.UserID)
		}
	}

	e.AccessTier = e.Tier()
}
