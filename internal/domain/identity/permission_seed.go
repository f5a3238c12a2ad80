package identity

// Resources guarded by RequirePermission
const (
	ResourceCategory       = "Category"
	ResourceUser           = "User"
	ResourceRole           = "Role"
	ResourcePermission     = "Permission"
	ResourceJournalEntry   = "JournalEntry"
	ResourceChartOfAccount = "ChartOfAccount"
	ResourceCashBook       = "CashBook"
	ResourceTrialBalance   = "TrialBalance"
	ResourceBalance        = "Balance"
	ResourceContact        = "Contact"
)

// Actions
const (
	ActionView    = "View"
	ActionRead    = "Read"
	ActionCreate  = "Create"
	ActionUpdate  = "Update"
	ActionDelete  = "Delete"
	ActionApprove = "Approve"
	ActionReverse = "Reverse"
	ActionExport  = "Export"
	ActionCompare = "Compare"
)

// PermissionDefinition describes a permission the seeder guarantees
type PermissionDefinition struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// PermissionKey identifies a permission by resource and action
type PermissionKey struct {
	Resource string
	Action   string
}

// RoleDefinition describes a built-in role and the permissions it must hold
type RoleDefinition struct {
	Name        string
	Description string
	Permissions []PermissionKey
}

// DefaultPermissions lists every permission known to the system
func DefaultPermissions() []PermissionDefinition {
	return []PermissionDefinition{
		{"View Categories", ResourceCategory, ActionView, "Can view category list and details"},
		{"Create Categories", ResourceCategory, ActionCreate, "Can create new categories"},
		{"Update Categories", ResourceCategory, ActionUpdate, "Can modify existing categories"},
		{"Delete Categories", ResourceCategory, ActionDelete, "Can delete categories"},

		{"View Users", ResourceUser, ActionView, "Can view user list and details"},
		{"Create Users", ResourceUser, ActionCreate, "Can create new users"},
		{"Update Users", ResourceUser, ActionUpdate, "Can modify user details"},
		{"Delete Users", ResourceUser, ActionDelete, "Can delete users"},

		{"View Roles", ResourceRole, ActionView, "Can view role list and details"},
		{"Create Roles", ResourceRole, ActionCreate, "Can create new roles"},
		{"Update Roles", ResourceRole, ActionUpdate, "Can modify role permissions"},
		{"Delete Roles", ResourceRole, ActionDelete, "Can delete roles"},

		{"View Permissions", ResourcePermission, ActionView, "Can view permission list and details"},
		{"Create Permissions", ResourcePermission, ActionCreate, "Can create new permissions"},
		{"Update Permissions", ResourcePermission, ActionUpdate, "Can modify permissions and user grants"},
		{"Delete Permissions", ResourcePermission, ActionDelete, "Can delete permissions"},

		{"Read Journal Entries", ResourceJournalEntry, ActionRead, "Can view journal entries and statistics"},
		{"Create Journal Entries", ResourceJournalEntry, ActionCreate, "Can create and post journal entries"},
		{"Update Journal Entries", ResourceJournalEntry, ActionUpdate, "Can modify draft journal entries"},
		{"Delete Journal Entries", ResourceJournalEntry, ActionDelete, "Can delete draft journal entries"},
		{"Approve Journal Entries", ResourceJournalEntry, ActionApprove, "Can approve posted journal entries"},
		{"Reverse Journal Entries", ResourceJournalEntry, ActionReverse, "Can reverse posted journal entries"},
		{"Export Journal Entries", ResourceJournalEntry, ActionExport, "Can export journal entries"},

		{"View Chart of Accounts", ResourceChartOfAccount, ActionView, "Can view the chart of accounts"},
		{"Create Accounts", ResourceChartOfAccount, ActionCreate, "Can add accounts"},
		{"Update Accounts", ResourceChartOfAccount, ActionUpdate, "Can modify accounts"},
		{"Delete Accounts", ResourceChartOfAccount, ActionDelete, "Can deactivate accounts"},

		{"View Cash Book", ResourceCashBook, ActionView, "Can view cash book transactions"},
		{"Create Cash Book Entries", ResourceCashBook, ActionCreate, "Can record cash book transactions"},

		{"View Trial Balance", ResourceTrialBalance, ActionView, "Can generate trial balance reports"},
		{"Compare Trial Balances", ResourceTrialBalance, ActionCompare, "Can compare trial balance periods"},

		{"View Balances", ResourceBalance, ActionView, "Can view account balances and the balance dashboard"},
		{"Refresh Balances", ResourceBalance, ActionUpdate, "Can clear cached balances"},

		{"View Contacts", ResourceContact, ActionView, "Can view buyers and suppliers"},
		{"Create Contacts", ResourceContact, ActionCreate, "Can add contacts and assign them to categories"},
		{"Update Contacts", ResourceContact, ActionUpdate, "Can modify and activate contacts"},
		{"Delete Contacts", ResourceContact, ActionDelete, "Can delete contacts and category assignments"},
	}
}

// DefaultRoles lists the built-in roles and their permission sets
func DefaultRoles() []RoleDefinition {
	all := make([]PermissionKey, 0)
	for _, def := range DefaultPermissions() {
		all = append(all, PermissionKey{Resource: def.Resource, Action: def.Action})
	}

	return []RoleDefinition{
		{
			Name:        RoleAdmin,
			Description: "System Administrator with full access",
			Permissions: all,
		},
		{
			Name:        RoleManager,
			Description: "Manager with elevated permissions",
			Permissions: []PermissionKey{
				{ResourceCategory, ActionView},
				{ResourceCategory, ActionCreate},
				{ResourceCategory, ActionUpdate},
				{ResourceUser, ActionView},
				{ResourceRole, ActionView},
				{ResourcePermission, ActionView},
				{ResourceJournalEntry, ActionRead},
				{ResourceJournalEntry, ActionCreate},
				{ResourceJournalEntry, ActionUpdate},
				{ResourceJournalEntry, ActionApprove},
				{ResourceJournalEntry, ActionExport},
				{ResourceChartOfAccount, ActionView},
				{ResourceChartOfAccount, ActionCreate},
				{ResourceChartOfAccount, ActionUpdate},
				{ResourceCashBook, ActionView},
				{ResourceCashBook, ActionCreate},
				{ResourceTrialBalance, ActionView},
				{ResourceTrialBalance, ActionCompare},
				{ResourceBalance, ActionView},
				{ResourceBalance, ActionUpdate},
				{ResourceContact, ActionView},
				{ResourceContact, ActionCreate},
				{ResourceContact, ActionUpdate},
			},
		},
		{
			Name:        RoleEmployee,
			Description: "Regular employee with basic permissions",
			Permissions: []PermissionKey{
				{ResourceCategory, ActionView},
				{ResourceJournalEntry, ActionRead},
				{ResourceChartOfAccount, ActionView},
				{ResourceCashBook, ActionView},
				{ResourceCashBook, ActionCreate},
				{ResourceTrialBalance, ActionView},
				{ResourceBalance, ActionView},
				{ResourceContact, ActionView},
			},
		},
	}
}
