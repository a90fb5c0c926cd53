package models

import "encoding/json"

type IdentityKind int

const (
	IdentityAnonymous IdentityKind = iota
	IdentityGuest
	IdentityAuthenticated
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityGuest:
		return "guest"
	case IdentityAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Identity is the state a browsing session is in. Only authenticated
// identities carry a user id.
type Identity struct {
	Kind   IdentityKind
	UserID string
	Email  string
}

func Anonymous() Identity {
	return Identity{Kind: IdentityAnonymous}
}

func Guest() Identity {
	return Identity{Kind: IdentityGuest}
}

func Authenticated(userID, email string) Identity {
	return Identity{Kind: IdentityAuthenticated, UserID: userID, Email: email}
}

func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityAuthenticated && i.UserID != ""
}

// Equal ignores the email; two notifications for the same user are the same identity.
func (i Identity) Equal(other Identity) bool {
	return i.Kind == other.Kind && i.UserID == other.UserID
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State  string `json:"state"`
		UserID string `json:"userId,omitempty"`
		Email  string `json:"email,omitempty"`
	}{
		State:  i.Kind.String(),
		UserID: i.UserID,
		Email:  i.Email,
	})
}
