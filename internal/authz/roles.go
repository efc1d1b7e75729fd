package authz

const (
	RoleOperator   = 10 // regular company user
	RoleManager    = 20 // company manager
	RoleSpecial    = 30 // elevated, tenant-scoped; may work with tasks
	RoleSuperAdmin = 50 // bypasses tenant scoping entirely
)

func IsSuperRole(roleID int) bool {
	return roleID == RoleSuperAdmin
}

func IsSpecialRole(roleID int) bool {
	return roleID == RoleSpecial
}

func CanManageEvents(roleID int) bool {
	return roleID == RoleManager || roleID == RoleSpecial || roleID == RoleSuperAdmin
}

// CanViewTasks: only super and special roles work with the task planner.
func CanViewTasks(roleID int) bool {
	return roleID == RoleSpecial || roleID == RoleSuperAdmin
}
