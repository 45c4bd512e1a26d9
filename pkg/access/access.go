// Package access maps caller roles to the permissions the gateway enforces.
// A Policy is built once from configuration and is read-only afterwards.
package access

import (
	"fmt"
	"sort"
	"strings"
)

// Permission names one guarded capability.
type Permission string

const (
	PermCatalogRead     Permission = "catalog.read"
	PermOrdersRead      Permission = "orders.read"
	PermOrdersWrite     Permission = "orders.write"
	PermPromotionsRead  Permission = "promotions.read"
	PermPromotionsWrite Permission = "promotions.write"
	PermReportsRead     Permission = "reports.read"
)

// Wildcard grants every permission.
const Wildcard = "*"

var knownPermissions = []Permission{
	PermCatalogRead,
	PermOrdersRead,
	PermOrdersWrite,
	PermPromotionsRead,
	PermPromotionsWrite,
	PermReportsRead,
}

// IsValid reports whether the value is a known Permission.
func (p Permission) IsValid() bool {
	for _, candidate := range knownPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// DefaultRoles is used when configuration names no roles.
func DefaultRoles() map[string]string {
	return map[string]string{
		"admin":   Wildcard,
		"manager": "catalog.read|orders.read|orders.write|promotions.read|promotions.write|reports.read",
		"clerk":   "catalog.read|orders.read|orders.write|promotions.read",
		"viewer":  "catalog.read|orders.read|promotions.read",
	}
}

// Policy answers whether a role holds a permission.
type Policy struct {
	roles map[string]map[Permission]struct{}
	all   map[string]bool
}

// NewPolicy parses role definitions of the form "perm|perm" or "*".
// Role names are case-insensitive.
func NewPolicy(roles map[string]string) (*Policy, error) {
	p := &Policy{
		roles: make(map[string]map[Permission]struct{}, len(roles)),
		all:   make(map[string]bool),
	}
	for rawRole, rawPerms := range roles {
		role := normalizeRole(rawRole)
		if role == "" {
			return nil, fmt.Errorf("empty role name")
		}
		granted := make(map[Permission]struct{})
		for _, part := range strings.Split(rawPerms, "|") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if part == Wildcard {
				p.all[role] = true
				continue
			}
			perm := Permission(part)
			if !perm.IsValid() {
				return nil, fmt.Errorf("role %q: unknown permission %q", rawRole, part)
			}
			granted[perm] = struct{}{}
		}
		p.roles[role] = granted
	}
	return p, nil
}

// Allows reports whether role holds perm. Unknown roles hold nothing.
func (p *Policy) Allows(role string, perm Permission) bool {
	if p == nil {
		return false
	}
	role = normalizeRole(role)
	if p.all[role] {
		return true
	}
	granted, ok := p.roles[role]
	if !ok {
		return false
	}
	_, ok = granted[perm]
	return ok
}

// HasRole reports whether the policy defines role.
func (p *Policy) HasRole(role string) bool {
	if p == nil {
		return false
	}
	_, ok := p.roles[normalizeRole(role)]
	return ok
}

// Roles lists the defined roles in sorted order.
func (p *Policy) Roles() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.roles))
	for role := range p.roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
