package domain

// Actor is the authenticated identity performing a request, extracted from
// a validated session token. Services authorize the actor before touching
// any resource; handlers never pass raw claims further down.
type Actor struct {
	UserID string
	Role   Role
	Email  string
}

// Authorized reports whether the actor may perform action.
func (a Actor) Authorized(action Action) bool {
	return Can(a.Role, action)
}
