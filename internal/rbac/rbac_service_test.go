package rbac_test

import (
	"errors"
	"testing"

	"leavemgmt/internal/domain"
	"leavemgmt/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type fakeRBACRepository struct {
	employeeRoles   []rbac.EmployeeRoleRow
	rolePermissions []rbac.RolePermissionRow
	err             error
}

func (f *fakeRBACRepository) GetEmployeeRoles() ([]rbac.EmployeeRoleRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employeeRoles, nil
}

func (f *fakeRBACRepository) GetRolePermissions() ([]rbac.RolePermissionRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rolePermissions, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testModel)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	hrEmployee := uuid.New().String()
	plainEmployee := uuid.New().String()
	hrRole := uuid.New().String()
	employeeRole := uuid.New().String()

	repo := &fakeRBACRepository{
		employeeRoles: []rbac.EmployeeRoleRow{
			{EmployeeID: hrEmployee, RoleID: hrRole},
			{EmployeeID: plainEmployee, RoleID: employeeRole},
		},
		rolePermissions: []rbac.RolePermissionRow{
			{RoleID: hrRole, Resource: "leaverequest", Action: "manage"},
			{RoleID: hrRole, Resource: "leaverequest", Action: "read"},
			{RoleID: employeeRole, Resource: "leaverequest", Action: "read"},
		},
	}

	service := rbac.NewService(repo, newTestEnforcer(t))

	t.Run("hr can manage requests", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: hrEmployee,
			Resource:   "leaverequest",
			Action:     "manage",
		})

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("employee cannot manage requests", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: plainEmployee,
			Resource:   "leaverequest",
			Action:     "manage",
		})

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("employee can read requests", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: plainEmployee,
			Resource:   "leaverequest",
			Action:     "read",
		})

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("unknown employee denied", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: uuid.New().String(),
			Resource:   "leaverequest",
			Action:     "read",
		})

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		broken := &fakeRBACRepository{err: errors.New("db down")}
		svc := rbac.NewService(broken, newTestEnforcer(t))

		_, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: hrEmployee,
			Resource:   "leaverequest",
			Action:     "read",
		})

		assert.Error(t, err)
	})
}

func TestRBACService_LoadPolicy(t *testing.T) {
	t.Run("reload reflects revoked role", func(t *testing.T) {
		employeeID := uuid.New().String()
		roleID := uuid.New().String()

		repo := &fakeRBACRepository{
			employeeRoles:   []rbac.EmployeeRoleRow{{EmployeeID: employeeID, RoleID: roleID}},
			rolePermissions: []rbac.RolePermissionRow{{RoleID: roleID, Resource: "leavetype", Action: "manage"}},
		}
		service := rbac.NewService(repo, newTestEnforcer(t))

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			Resource:   "leavetype",
			Action:     "manage",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)

		repo.employeeRoles = nil

		allowed, err = service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			Resource:   "leavetype",
			Action:     "manage",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
