package permission

import "github.com/protrack-app/protrack/internal/shared"

// Has reports whether the identity may access the area at the given level.
// Unknown or unmapped areas fail closed. The check has no side effects.
func Has(id *shared.Identity, area Area, level Level) bool {
	if id == nil {
		return false
	}
	if id.Role == RoleMaster {
		return true
	}

	switch level {
	case LevelRead:
		granted := GrantedLevel(id, area)
		return granted == LevelRead || granted == LevelWrite
	case LevelWrite:
		return GrantedLevel(id, area) == LevelWrite
	}
	return false
}

// GrantedLevel returns the level stored for an area, with LevelNone for
// unmapped areas. Has builds on it; handlers use it to report effective
// access.
func GrantedLevel(id *shared.Identity, area Area) Level {
	if id == nil {
		return LevelNone
	}
	if granted := Level(id.Permissions[string(area)]); granted != "" {
		return granted
	}
	return LevelNone
}
