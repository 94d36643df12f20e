package domain

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
)

// Actor is the authenticated caller as handed over by the auth layer.
// The core never issues credentials, it only consumes id and role.
type Actor struct {
	ID   int
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
