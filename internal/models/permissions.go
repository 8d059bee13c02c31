package models

const (
	PermissionMethodRead   = "method:read"
	PermissionMethodWrite  = "method:write"
	PermissionFeeRuleRead  = "feerule:read"
	PermissionFeeRuleWrite = "feerule:write"
	PermissionOrderRead    = "order:read"
	PermissionOrderWrite   = "order:write"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionMethodRead,
			PermissionMethodWrite,
			PermissionFeeRuleRead,
			PermissionFeeRuleWrite,
			PermissionOrderRead,
			PermissionOrderWrite,
		}
	case RoleOperator:
		return []string{
			PermissionMethodRead,
			PermissionFeeRuleRead,
			PermissionOrderRead,
			PermissionOrderWrite,
		}
	default:
		return []string{}
	}
}
