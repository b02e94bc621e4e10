package rbac

const (
	ResourceSubject  = "subject"
	ResourceSnapshot = "salary_snapshot"
	ResourceCatalog  = "salary_definition"
	ResourceConfig   = "document_config"
	ResourceDocument = "document"
)

const (
	ActionRead       = "read"
	ActionWrite      = "write"
	ActionTransition = "transition"
	ActionExpire     = "expire"
)

const (
	RoleViewer  = "viewer"
	RoleManager = "hr_manager"
	RoleAdmin   = "hr_admin"
	// RoleSystem is carried by service tokens (consumers, schedulers).
	RoleSystem = "system"
)

// inheritance: child role gets every permission of parent.
var roleParents = [][2]string{
	{RoleManager, RoleViewer},
	{RoleAdmin, RoleManager},
	{RoleSystem, RoleAdmin},
}

var rolePermissions = map[string][][2]string{
	RoleViewer: {
		{ResourceSubject, ActionRead},
		{ResourceSnapshot, ActionRead},
		{ResourceCatalog, ActionRead},
		{ResourceConfig, ActionRead},
		{ResourceDocument, ActionRead},
	},
	RoleManager: {
		{ResourceSnapshot, ActionWrite},
		{ResourceDocument, ActionWrite},
		{ResourceDocument, ActionTransition},
	},
	RoleAdmin: {
		{ResourceSubject, ActionWrite},
		{ResourceCatalog, ActionWrite},
		{ResourceConfig, ActionWrite},
	},
	RoleSystem: {
		{ResourceDocument, ActionExpire},
	},
}
