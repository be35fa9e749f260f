package models

import "maps"

// Built-in roles.
const (
	RoleAdmin = "admin"
	RolePower = "power"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Permission keys checked by the request policy.
const (
	PermRun                   = "can_run"
	PermUpload                = "can_upload"
	PermAccessManager         = "can_access_manager"
	PermAccessAPI             = "can_access_api"
	PermSeeRestrictedSettings = "can_see_restricted_settings"
	PermModifyWorkflows       = "can_modify_workflows"
	PermManageExtensions      = "can_manage_extensions"
	PermSettingsITools        = "settings_itools"
	PermSettingsCrystools     = "settings_crystools"
	PermSettingsRgthree       = "settings_rgthree"
	PermSettingsGallery       = "settings_gallery"
)

// Permissions maps a permission key to its explicit value. A key that is
// absent from the map is unset; see [Identity.Allowed] for how unset keys
// are resolved.
type Permissions map[string]bool

// Lookup returns the explicit value of key and whether it is set.
func (p Permissions) Lookup(key string) (value bool, ok bool) {
	value, ok = p[key]
	return value, ok
}

// Clone returns a copy of p. A nil map is cloned to an empty one.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return Permissions{}
	}
	return maps.Clone(p)
}

// GroupTable is the role -> permissions configuration.
type GroupTable map[string]Permissions

// Clone returns a deep copy of t.
func (t GroupTable) Clone() GroupTable {
	out := make(GroupTable, len(t))
	for role, perms := range t {
		out[role] = perms.Clone()
	}
	return out
}

// MergeDefaults adds every role and key of defaults that is missing from t.
// Existing values are never overwritten. It reports whether t was changed.
func (t GroupTable) MergeDefaults(defaults GroupTable) bool {
	changed := false
	for role, defPerms := range defaults {
		perms, ok := t[role]
		if !ok || perms == nil {
			perms = Permissions{}
			t[role] = perms
			changed = true
		}
		for key, value := range defPerms {
			if _, set := perms[key]; !set {
				perms[key] = value
				changed = true
			}
		}
	}
	return changed
}

// DefaultGroups returns the built-in group table used to seed and backfill
// the persisted configuration.
func DefaultGroups() GroupTable {
	full := func(v bool) Permissions {
		return Permissions{
			PermRun:                   true,
			PermUpload:                true,
			PermAccessManager:         v,
			PermAccessAPI:             true,
			PermSeeRestrictedSettings: v,
			PermModifyWorkflows:       true,
			PermManageExtensions:      v,
			PermSettingsITools:        true,
			PermSettingsCrystools:     true,
			PermSettingsRgthree:       true,
			PermSettingsGallery:       true,
		}
	}
	return GroupTable{
		RoleAdmin: full(true),
		RolePower: full(true),
		RoleUser:  full(false),
		RoleGuest: Permissions{
			PermRun:                   false,
			PermUpload:                false,
			PermAccessManager:         false,
			PermAccessAPI:             true,
			PermSeeRestrictedSettings: false,
			PermModifyWorkflows:       false,
			PermManageExtensions:      false,
			PermSettingsITools:        false,
			PermSettingsCrystools:     false,
			PermSettingsRgthree:       false,
			PermSettingsGallery:       true,
		},
	}
}
