package domain_test

import (
	"sort"
	"testing"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/stretchr/testify/require"
)

var allRoles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleSupervisor,
	domain.RoleUser,
}

var allActions = []domain.Action{
	domain.ActionCreateExam,
	domain.ActionDeleteExam,
	domain.ActionAssignVote,
	domain.ActionRegisterForExam,
	domain.ActionViewOwnResults,
	domain.ActionListUsers,
	domain.ActionCreateUser,
	domain.ActionResetMFA,
	domain.ActionRotateKeys,
	domain.ActionExportResults,
}

// TestCanFullMatrix pins the entire capability table: every (role, action)
// pair is checked, so adding an action without deciding who may use it
// fails here first.
func TestCanFullMatrix(t *testing.T) {
	t.Parallel()

	allowed := map[domain.Role]map[domain.Action]bool{
		domain.RoleAdmin: {
			domain.ActionCreateExam:    true,
			domain.ActionDeleteExam:    true,
			domain.ActionListUsers:     true,
			domain.ActionCreateUser:    true,
			domain.ActionResetMFA:      true,
			domain.ActionRotateKeys:    true,
			domain.ActionExportResults: true,
		},
		domain.RoleSupervisor: {
			domain.ActionAssignVote: true,
			domain.ActionListUsers:  true,
		},
		domain.RoleUser: {
			domain.ActionRegisterForExam: true,
			domain.ActionViewOwnResults:  true,
		},
	}

	for _, role := range allRoles {
		for _, action := range allActions {
			want := allowed[role][action]
			require.Equalf(t, want, domain.Can(role, action),
				"Can(%s, %s)", role, action)
		}
	}
}

// TestCanRoleSeparation spells out the pairs that separate the three roles.
func TestCanRoleSeparation(t *testing.T) {
	t.Parallel()

	require.True(t, domain.Can(domain.RoleAdmin, domain.ActionCreateExam))
	require.False(t, domain.Can(domain.RoleAdmin, domain.ActionAssignVote))
	require.False(t, domain.Can(domain.RoleAdmin, domain.ActionRegisterForExam))
	require.False(t, domain.Can(domain.RoleAdmin, domain.ActionViewOwnResults))

	require.True(t, domain.Can(domain.RoleSupervisor, domain.ActionAssignVote))
	require.False(t, domain.Can(domain.RoleSupervisor, domain.ActionCreateExam))
	require.False(t, domain.Can(domain.RoleSupervisor, domain.ActionRegisterForExam))
	require.False(t, domain.Can(domain.RoleSupervisor, domain.ActionViewOwnResults))

	require.True(t, domain.Can(domain.RoleUser, domain.ActionRegisterForExam))
	require.True(t, domain.Can(domain.RoleUser, domain.ActionViewOwnResults))
	require.False(t, domain.Can(domain.RoleUser, domain.ActionCreateExam))
	require.False(t, domain.Can(domain.RoleUser, domain.ActionAssignVote))
}

func TestCanUnknownRoleOrAction(t *testing.T) {
	t.Parallel()

	require.False(t, domain.Can("root", domain.ActionCreateExam))
	require.False(t, domain.Can("", domain.ActionViewOwnResults))
	require.False(t, domain.Can(domain.RoleAdmin, "drop_everything"))
	require.False(t, domain.Can(domain.RoleUser, ""))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, role := range allRoles {
		parsed, ok := domain.ParseRole(string(role))
		require.True(t, ok)
		require.Equal(t, role, parsed)
		require.True(t, role.Valid())
	}

	_, ok := domain.ParseRole("Admin")
	require.False(t, ok)
	_, ok = domain.ParseRole("")
	require.False(t, ok)
	require.False(t, domain.Role("superuser").Valid())
}

func TestPermissionsSortedAndComplete(t *testing.T) {
	t.Parallel()

	for _, role := range allRoles {
		perms := domain.Permissions(role)
		require.True(t, sort.StringsAreSorted(perms), "permissions for %s not sorted", role)

		granted := 0
		for _, action := range allActions {
			if domain.Can(role, action) {
				granted++
				require.Contains(t, perms, string(action))
			}
		}
		require.Len(t, perms, granted)
	}

	require.Empty(t, domain.Permissions("nobody"))
}

func TestActorAuthorized(t *testing.T) {
	t.Parallel()

	actor := domain.Actor{UserID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Role: domain.RoleSupervisor}
	require.True(t, actor.Authorized(domain.ActionAssignVote))
	require.False(t, actor.Authorized(domain.ActionCreateExam))
}
