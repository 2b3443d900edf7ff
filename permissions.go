package authcore

// Permission is the capability set attached to a role. It is reported
// by the current-user endpoint so the admin UI can hide what the role
// cannot do; the server still enforces roles on every request.
type Permission struct {
	CanEdit          bool `json:"canEdit"`
	CanApprove       bool `json:"canApprove"`
	CanDelete        bool `json:"canDelete"`
	CanViewDashboard bool `json:"canViewDashboard"`
	CanManageUsers   bool `json:"canManageUsers"`
}

var permissionsByRole = map[Role]Permission{
	RoleAdmin: {
		CanEdit:          true,
		CanApprove:       true,
		CanDelete:        true,
		CanViewDashboard: true,
		CanManageUsers:   true,
	},
	RoleEditor: {
		CanEdit:          true,
		CanViewDashboard: true,
	},
	RoleViewer: {
		CanViewDashboard: true,
	},
}

// Permissions returns the capability set for the role. Unknown roles
// get the zero set.
func (r Role) Permissions() Permission {
	return permissionsByRole[r]
}
