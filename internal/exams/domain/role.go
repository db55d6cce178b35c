package domain

import "sort"

// Role is a user's authority level. Assigned at account creation and
// immutable through this service's API.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleUser       Role = "user"
)

// ParseRole returns the Role for s, or false if s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSupervisor, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Action is a named operation subject to authorization.
type Action string

const (
	ActionCreateExam      Action = "create_exam"
	ActionDeleteExam      Action = "delete_exam"
	ActionAssignVote      Action = "assign_vote"
	ActionRegisterForExam Action = "register_for_exam"
	ActionViewOwnResults  Action = "view_own_results"
	ActionListUsers       Action = "list_users"
	ActionCreateUser      Action = "create_user"
	ActionResetMFA        Action = "reset_mfa"
	ActionRotateKeys      Action = "rotate_keys"
	ActionExportResults   Action = "export_results"
)

// capabilities is the entire authorization model: which role may perform
// which action. Anything not listed here is denied. Listing ungraded
// assignments is the read phase of grading, so it rides assign_vote
// rather than getting its own action.
var capabilities = map[Role]map[Action]struct{}{
	RoleAdmin: {
		ActionCreateExam:    {},
		ActionDeleteExam:    {},
		ActionListUsers:     {},
		ActionCreateUser:    {},
		ActionResetMFA:      {},
		ActionRotateKeys:    {},
		ActionExportResults: {},
	},
	RoleSupervisor: {
		ActionAssignVote: {},
		ActionListUsers:  {},
	},
	RoleUser: {
		ActionRegisterForExam: {},
		ActionViewOwnResults:  {},
	},
}

// Can reports whether role may perform action. Pure and total: unknown
// roles and unknown actions deny.
func Can(role Role, action Action) bool {
	actions, ok := capabilities[role]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// Permissions returns the actions a role may perform, sorted for stable
// output on the me endpoint.
func Permissions(role Role) []string {
	actions := capabilities[role]
	out := make([]string, 0, len(actions))
	for a := range actions {
		out = append(out, string(a))
	}
	sort.Strings(out)
	return out
}
