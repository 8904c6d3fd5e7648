package types

import (
	"encoding/json"
)

// Permission is a node of an account's permission tree. Parent is 0 for the
// root (owner) permission.
type Permission struct {
	ID          uint64    `json:"id"`
	Owner       uint64    `json:"owner"`
	Parent      uint64    `json:"parent"`
	Name        string    `json:"name"`
	Auth        Authority `json:"auth"`
	LastUpdated int64     `json:"last_updated"`
}

// IsRoot reports whether the permission has no parent.
func (p Permission) IsRoot() bool {
	return p.Parent == 0
}

func (p Permission) String() string {
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// ActionPermission maps a scope permission, as seen by an acting account, to
// the permission of that account which must authorize it.
type ActionPermission struct {
	ID              uint64 `json:"id"`
	Owner           uint64 `json:"owner"`
	ScopePermission uint64 `json:"scope_permission"`
	OwnerPermission uint64 `json:"owner_permission"`
}
