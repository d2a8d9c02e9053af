package domain

import "strings"

// NormalizeRole maps a free-form role label (e.g. "Admin User", "Normal User")
// to one of the two known roles. Any label mentioning "admin", in any case,
// becomes RoleAdmin; everything else, including empty input, falls back to
// RoleUser so an unrecognized label never grants admin access.
func NormalizeRole(label string) string {
	if strings.Contains(strings.ToLower(label), RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}
