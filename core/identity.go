package core

// Identity is the authenticated caller of a service operation, resolved from the live user store.
type Identity struct {
	ID       int
	Username string
	IsAdmin  bool
}

// Anonymous reports whether no user is bound to the identity.
func (id Identity) Anonymous() bool {
	return id.ID == 0
}
