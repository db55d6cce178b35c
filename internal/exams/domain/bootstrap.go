package domain

// BootstrapData seeds the first accounts into an empty store. The
// supervisor fields are optional.
type BootstrapData struct {
	AdminEmail         string
	AdminPassword      string
	SupervisorEmail    string
	SupervisorPassword string
}
