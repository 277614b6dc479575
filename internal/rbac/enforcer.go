package rbac

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the static role model and policy. The product has
// exactly three fixed roles (ADMIN, EMPLOYEE, CLIENT); policies are
// files, not database rows.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}
