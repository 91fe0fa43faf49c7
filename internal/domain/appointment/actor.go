package appointment

import "github.com/BruksfildServices01/studio-scheduler/internal/models"

type Role string

const (
	RoleClient  Role = "client"
	RoleArtist  Role = "artist"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleArtist || r == RoleManager
}

// Side is which party of an appointment an actor speaks for.
type Side string

const (
	SideClient Side = "client"
	SideArtist Side = "artist"
)

// Actor is the already-authenticated caller of every operation.
type Actor struct {
	UserID   uint
	StudioID uint
	Role     Role
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleArtist || a.Role == RoleManager
}

func (a Actor) Side() Side {
	if a.IsStaff() {
		return SideArtist
	}
	return SideClient
}

// IsPartyTo reports whether the actor may act on ap at all. Managers
// act on any appointment of their studio.
func (a Actor) IsPartyTo(ap *models.Appointment) bool {
	switch a.Role {
	case RoleManager:
		return a.StudioID == ap.StudioID
	case RoleArtist:
		return a.UserID == ap.ArtistID
	case RoleClient:
		return a.UserID == ap.ClientID
	}
	return false
}
