package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAdmin(t *testing.T, svc *Services, username string) *Admin {
	t.Helper()
	admin, err := svc.Admins.Create(&Admin{
		Username:         username,
		FirstName:        "Elena",
		LastName:         "Dimitrova",
		Email:            username + "@vcheck.example",
		Role:             "SUPERVISOR",
		Department:       "Operations",
		CanManageClients: true,
		CanViewAnalytics: true,
	})
	require.NoError(t, err)
	return admin
}

func TestAdminService_CreateAndUniqueness(t *testing.T) {
	svc := newTestServices(t)

	admin := seedAdmin(t, svc, "elena")
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, defaultSessionCount, admin.ActiveSessionCount)
	assert.Equal(t, defaultLastAction, admin.LastActionPerformed)
	assert.Equal(t, defaultManagedClients, admin.ManagedClientsCount)
	assert.Equal(t, defaultManagedOfficers, admin.ManagedOfficersCount)

	_, err := svc.Admins.Create(&Admin{Username: "elena", Email: "other@vcheck.example"})
	require.ErrorIs(t, err, ErrConflict)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)

	_, err = svc.Admins.Create(&Admin{Username: "other", Email: "elena@vcheck.example"})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestAdminService_UpdateKeepsUnchangedIdentity(t *testing.T) {
	svc := newTestServices(t)
	admin := seedAdmin(t, svc, "petar")
	seedAdmin(t, svc, "taken")

	// Re-submitting the admin's own username is not a collision.
	updated, err := svc.Admins.Update(admin.ID, &Admin{Username: "petar", Department: "Compliance"})
	require.NoError(t, err)
	assert.Equal(t, "Compliance", updated.Department)

	_, err = svc.Admins.Update(admin.ID, &Admin{Username: "taken"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Admins.Update(admin.ID, &Admin{Email: "taken@vcheck.example"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Admins.Update("no-such-id", &Admin{})
	require.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAdminService_Permissions(t *testing.T) {
	svc := newTestServices(t)
	admin := seedAdmin(t, svc, "rosen")

	withClients, err := svc.Admins.ListWithClientManagement()
	require.NoError(t, err)
	assert.Len(t, withClients, 1)
	withOfficers, err := svc.Admins.ListWithOfficerManagement()
	require.NoError(t, err)
	assert.Empty(t, withOfficers)

	updated, err := svc.Admins.UpdatePermissions(admin.ID, false, true, true, false)
	require.NoError(t, err)
	assert.False(t, updated.CanManageClients)
	assert.True(t, updated.CanManageOfficers)
	assert.True(t, updated.CanViewAnalytics)
	assert.False(t, updated.CanManageSystem)

	withClients, err = svc.Admins.ListWithClientManagement()
	require.NoError(t, err)
	assert.Empty(t, withClients)
	withOfficers, err = svc.Admins.ListWithOfficerManagement()
	require.NoError(t, err)
	assert.Len(t, withOfficers, 1)
	withAnalytics, err := svc.Admins.ListWithAnalyticsAccess()
	require.NoError(t, err)
	assert.Len(t, withAnalytics, 1)
}

func TestAdminService_LastLogin(t *testing.T) {
	svc := newTestServices(t)
	admin := seedAdmin(t, svc, "silvia")
	assert.Nil(t, admin.LastLogin)

	require.NoError(t, svc.Admins.UpdateLastLogin("silvia"))
	got, err := svc.Admins.Get(admin.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)

	// Unknown usernames are a silent no-op.
	require.NoError(t, svc.Admins.UpdateLastLogin("nobody"))
}

func TestAdminService_Lookups(t *testing.T) {
	svc := newTestServices(t)
	admin := seedAdmin(t, svc, "georgi")

	byUsername, err := svc.Admins.GetByUsername("georgi")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byUsername.ID)

	byEmail, err := svc.Admins.GetByEmail("georgi@vcheck.example")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byEmail.ID)

	byDept, err := svc.Admins.ListByDepartment("Operations")
	require.NoError(t, err)
	assert.Len(t, byDept, 1)

	byRole, err := svc.Admins.ListByRole("SUPERVISOR")
	require.NoError(t, err)
	assert.Len(t, byRole, 1)

	sessions, err := svc.Admins.ActiveSessionCount(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultSessionCount, sessions)

	action, err := svc.Admins.LastActionPerformed(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultLastAction, action)

	require.NoError(t, svc.Admins.Delete(admin.ID))
	_, err = svc.Admins.Get(admin.ID)
	require.ErrorIs(t, err, ErrAdminNotFound)
}
