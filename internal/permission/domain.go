// Package permission implements the access gate for tenant users.
//
// Every guarded surface is an Area; a user's permission map assigns each
// area a Level. The master role bypasses the map entirely.
package permission

// Area names a guarded section of the application.
type Area string

const (
	AreaMaterial      Area = "material"
	AreaLabor         Area = "labor"
	AreaEquipment     Area = "equipment"
	AreaSubcontractor Area = "subcontractor"
	AreaOthers        Area = "others"
	AreaCapLeases     Area = "capLeases"
	AreaConsumable    Area = "consumable"
	AreaInvoices      Area = "invoices"
	AreaProjects      Area = "projects"
	AreaUsers         Area = "users"
)

// Areas lists every guarded area in display order.
func Areas() []Area {
	return []Area{
		AreaMaterial, AreaLabor, AreaEquipment, AreaSubcontractor,
		AreaOthers, AreaCapLeases, AreaConsumable,
		AreaInvoices, AreaProjects, AreaUsers,
	}
}

// Level is the granted access level for an area.
type Level string

const (
	LevelNone  Level = "none"
	LevelRead  Level = "read"
	LevelWrite Level = "write"
)

// Role groups users by baseline capability. Master bypasses per-area checks.
const (
	RoleMaster  = "master"
	RoleManager = "manager"
	RoleEntry   = "entry"
)
