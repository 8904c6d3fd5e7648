package types

import (
	"cosmossdk.io/collections"
)

var (
	// ParamsKey saves the current module params.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the params collection.
	ParamsName = "params"

	// AccountSeqKey is the key of the account id sequence.
	AccountSeqKey  = collections.NewPrefix(1)
	AccountSeqName = "account_seq"

	// AccountsKey stores accounts by id.
	AccountsKey  = collections.NewPrefix(2)
	AccountsName = "accounts"

	// AccountsByNameKey is the unique name index of accounts.
	AccountsByNameKey  = collections.NewPrefix(3)
	AccountsByNameName = "accounts_by_name"

	// PermissionSeqKey is the key of the permission id sequence.
	PermissionSeqKey  = collections.NewPrefix(4)
	PermissionSeqName = "permission_seq"

	// PermissionsKey stores permissions by id.
	PermissionsKey  = collections.NewPrefix(5)
	PermissionsName = "permissions"

	// PermissionsByOwnerKey is the unique (owner, name) index of permissions.
	PermissionsByOwnerKey  = collections.NewPrefix(6)
	PermissionsByOwnerName = "permissions_by_owner"

	// PermissionsByParentKey indexes permissions by their parent id.
	PermissionsByParentKey  = collections.NewPrefix(7)
	PermissionsByParentName = "permissions_by_parent"

	// LinkSeqKey is the key of the action permission id sequence.
	LinkSeqKey  = collections.NewPrefix(8)
	LinkSeqName = "link_seq"

	// LinksKey stores action permission links by id.
	LinksKey  = collections.NewPrefix(9)
	LinksName = "links"

	// LinksByScopeKey is the unique (owner, scope permission) index of links.
	LinksByScopeKey  = collections.NewPrefix(10)
	LinksByScopeName = "links_by_scope"

	// LinksByRequirementKey indexes links by the permission they require.
	LinksByRequirementKey  = collections.NewPrefix(11)
	LinksByRequirementName = "links_by_requirement"

	// LinksByScopePermissionKey indexes links by their scope permission alone.
	LinksByScopePermissionKey  = collections.NewPrefix(12)
	LinksByScopePermissionName = "links_by_scope_permission"
)

const (
	ModuleName = "accounts"

	StoreKey = ModuleName
)
