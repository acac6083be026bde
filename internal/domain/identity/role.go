package identity

import "fmt"

// Role is the account kind carried by a token. Authorization decisions
// switch exhaustively over it instead of comparing raw strings.
type Role int

const (
	RoleUnknown Role = iota
	RoleClient
	RoleSalon
	RoleProfessional
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleSalon:
		return "salon"
	case RoleProfessional:
		return "professional"
	case RoleUnknown:
		return "unknown"
	}
	return "unknown"
}

func Parse(s string) (Role, error) {
	switch s {
	case "client":
		return RoleClient, nil
	case "salon":
		return RoleSalon, nil
	case "professional":
		return RoleProfessional, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the three concrete roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleSalon, RoleProfessional:
		return true
	case RoleUnknown:
		return false
	}
	return false
}
