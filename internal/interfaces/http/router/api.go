package router

import (
	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Role           *handler.RoleHandler
	Permission     *handler.PermissionHandler
	Category       *handler.CategoryHandler
	Account        *handler.AccountHandler
	Journal        *handler.JournalEntryHandler
	CashBook       *handler.CashBookHandler
	CashBookImport *handler.CashBookImportHandler
	TrialBalance   *handler.TrialBalanceHandler
	Balance        *handler.BalanceHandler
	Contact        *handler.ContactHandler
}

// PublicAuthPaths are reachable without a token, relative to the API prefix
var PublicAuthPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/setup-admin",
	"/auth/refresh",
}

// APIGroups declares every API route and the permission it requires.
// authLimit, when set, throttles the public auth routes.
func APIGroups(h Handlers, authLimit gin.HandlerFunc) []*DomainGroup {
	return []*DomainGroup{
		authRoutes(h.Auth, authLimit),
		userRoutes(h.User),
		roleRoutes(h.Role),
		permissionRoutes(h.Permission),
		categoryRoutes(h.Category),
		accountRoutes(h.Account),
		journalRoutes(h.Journal),
		cashBookRoutes(h.CashBook),
		cashBookImportRoutes(h.CashBookImport),
		trialBalanceRoutes(h.TrialBalance),
		balanceRoutes(h.Balance),
		contactRoutes(h.Contact),
	}
}

func authRoutes(h *handler.AuthHandler, authLimit gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("auth", "/auth")

	public := g.Group("auth-public", "")
	if authLimit != nil {
		public.Use(authLimit)
	}
	public.POST("/login", h.Login)
	public.POST("/register", h.Register)
	public.POST("/setup-admin", h.SetupAdmin)
	public.POST("/refresh", h.RefreshToken)

	// any authenticated user
	g.POST("/logout", h.Logout)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/change-password", h.ChangePassword)
	g.GET("/roles", h.ListRoles)
	return g
}

func userRoutes(h *handler.UserHandler) *DomainGroup {
	g := NewDomainGroup("users", "/users")
	g.Require(identity.ResourceUser, identity.ActionView).
		GET("", h.List).
		GET("/:id", h.GetByID)
	g.Require(identity.ResourceUser, identity.ActionUpdate).
		PATCH("/:id/activate", h.Activate).
		PATCH("/:id/deactivate", h.Deactivate).
		PATCH("/:id/unlock", h.Unlock).
		POST("/:id/reset-password", h.ResetPassword).
		PUT("/:id/roles", h.AssignRoles)
	return g
}

func roleRoutes(h *handler.RoleHandler) *DomainGroup {
	g := NewDomainGroup("roles", "/roles")
	g.Require(identity.ResourceRole, identity.ActionView).
		GET("", h.List).
		GET("/:id", h.GetByID).
		GET("/:id/permissions", h.Permissions)
	g.Require(identity.ResourceRole, identity.ActionCreate).
		POST("", h.Create)
	g.Require(identity.ResourceRole, identity.ActionUpdate).
		PUT("/:id", h.Update).
		PATCH("/:id/enable", h.Enable).
		PATCH("/:id/disable", h.Disable).
		PUT("/:id/permissions", h.SetPermissions)
	return g
}

func permissionRoutes(h *handler.PermissionHandler) *DomainGroup {
	g := NewDomainGroup("permissions", "/permissions")
	g.Require(identity.ResourcePermission, identity.ActionView).
		GET("", h.List).
		POST("/check", h.Check).
		GET("/users/:userId", h.UserPermissions).
		GET("/users/:userId/effective", h.EffectivePermissions).
		GET("/:id", h.GetByID)
	g.Require(identity.ResourcePermission, identity.ActionCreate).
		POST("", h.Create)
	g.Require(identity.ResourcePermission, identity.ActionUpdate).
		PUT("/:id", h.Update).
		POST("/users/:userId/:permissionId", h.Grant).
		DELETE("/users/:userId/:permissionId", h.Revoke)
	g.Require(identity.ResourcePermission, identity.ActionDelete).
		DELETE("/:id", h.Delete)
	return g
}

func categoryRoutes(h *handler.CategoryHandler) *DomainGroup {
	g := NewDomainGroup("categories", "/categories")
	g.Require(identity.ResourceCategory, identity.ActionView).
		GET("", h.GetAll).
		GET("/search", h.Search).
		GET("/type/:type", h.GetByType).
		GET("/:id", h.GetByID).
		GET("/:id/usage", h.Usage)
	g.Require(identity.ResourceCategory, identity.ActionCreate).
		POST("", h.Create)
	g.Require(identity.ResourceCategory, identity.ActionUpdate).
		PUT("/:id", h.Update).
		PATCH("/:id/toggle-status", h.ToggleStatus)
	g.Require(identity.ResourceCategory, identity.ActionDelete).
		DELETE("/:id", h.Delete)
	return g
}

func accountRoutes(h *handler.AccountHandler) *DomainGroup {
	g := NewDomainGroup("accounts", "/accounts")
	g.Require(identity.ResourceChartOfAccount, identity.ActionView).
		GET("", h.List).
		GET("/account-types", h.AccountTypes).
		GET("/next-account-code", h.NextAccountCode).
		GET("/search", h.Search).
		GET("/by-type/:type", h.ByType).
		GET("/:id", h.GetByID)
	g.Require(identity.ResourceChartOfAccount, identity.ActionCreate).
		POST("", h.Create)
	g.Require(identity.ResourceChartOfAccount, identity.ActionUpdate).
		PUT("/:id", h.Update)
	g.Require(identity.ResourceChartOfAccount, identity.ActionDelete).
		DELETE("/:id", h.Delete)
	return g
}

func journalRoutes(h *handler.JournalEntryHandler) *DomainGroup {
	g := NewDomainGroup("journal-entries", "/journal-entries")
	g.Require(identity.ResourceJournalEntry, identity.ActionRead).
		GET("", h.List).
		GET("/statistics", h.Statistics).
		GET("/types", h.Types).
		GET("/statuses", h.Statuses).
		GET("/:id", h.GetByID).
		GET("/:id/validate", h.Validate)
	g.Require(identity.ResourceJournalEntry, identity.ActionExport).
		POST("/export", h.Export).
		POST("/export/archive", h.ArchiveExport)
	g.Require(identity.ResourceJournalEntry, identity.ActionCreate).
		POST("", h.Create)
	g.Require(identity.ResourceJournalEntry, identity.ActionUpdate).
		PUT("/:id", h.Update).
		PATCH("/:id/post", h.Post)
	g.Require(identity.ResourceJournalEntry, identity.ActionDelete).
		DELETE("/:id", h.Delete)
	g.Require(identity.ResourceJournalEntry, identity.ActionApprove).
		PATCH("/:id/approve", h.Approve)
	g.Require(identity.ResourceJournalEntry, identity.ActionReverse).
		PATCH("/:id/reverse", h.Reverse)
	return g
}

func cashBookRoutes(h *handler.CashBookHandler) *DomainGroup {
	g := NewDomainGroup("cash-book", "/cash-book")
	g.Require(identity.ResourceCashBook, identity.ActionView).
		GET("/recent", h.Recent).
		GET("/entries", h.ListEntries)
	g.Require(identity.ResourceCashBook, identity.ActionCreate).
		POST("/credit", h.SaveCredit).
		POST("/debit", h.SaveDebit).
		POST("/entries", h.CreateEntry).
		PATCH("/entries/:id/complete", h.CompleteEntry)
	return g
}

func trialBalanceRoutes(h *handler.TrialBalanceHandler) *DomainGroup {
	g := NewDomainGroup("trial-balance", "/trial-balance")
	g.Require(identity.ResourceTrialBalance, identity.ActionView).
		GET("", h.Generate).
		GET("/account/:accountId/transactions", h.AccountTransactions).
		POST("/calculate", h.Calculate)
	g.Require(identity.ResourceTrialBalance, identity.ActionCompare).
		POST("/compare", h.Compare).
		DELETE("/cache", h.ClearCache)
	return g
}

func cashBookImportRoutes(h *handler.CashBookImportHandler) *DomainGroup {
	g := NewDomainGroup("cash-book-import", "/cash-book-import")
	g.Require(identity.ResourceCashBook, identity.ActionView).
		GET("/sample-format", h.SampleFormat)
	g.Require(identity.ResourceCashBook, identity.ActionCreate).
		POST("/import-csv", h.ImportCSV).
		POST("/import-manual", h.ImportManual)
	return g
}

func balanceRoutes(h *handler.BalanceHandler) *DomainGroup {
	g := NewDomainGroup("balance", "/balance")
	g.Require(identity.ResourceBalance, identity.ActionView).
		GET("/bank", h.BankBalances).
		GET("/cash", h.CashBalances).
		GET("/summary", h.Summary).
		GET("/dashboard", h.Dashboard).
		GET("/account/:id", h.AccountBalance).
		GET("/account/:id/as-of/:date", h.AccountBalanceAsOf).
		GET("/account/:id/realtime", h.RealtimeAccountBalance)
	g.Require(identity.ResourceBalance, identity.ActionUpdate).
		POST("/refresh-cache", h.RefreshCache).
		DELETE("/cache/account/:id", h.ClearAccountCache)
	return g
}

func contactRoutes(h *handler.ContactHandler) *DomainGroup {
	g := NewDomainGroup("contacts", "/contacts")
	g.Require(identity.ResourceContact, identity.ActionView).
		GET("", h.GetAll).
		GET("/suppliers", h.Suppliers).
		GET("/buyers", h.Buyers).
		GET("/search", h.Search).
		GET("/autocomplete", h.Autocomplete).
		GET("/category/:categoryId", h.ByCategory).
		GET("/:id", h.GetByID).
		GET("/:id/categories", h.Categories).
		GET("/:id/transactions", h.Transactions).
		GET("/:id/balance", h.Balance)
	g.Require(identity.ResourceContact, identity.ActionCreate).
		POST("", h.Create).
		POST("/:id/categories/:categoryId", h.AssignCategory)
	g.Require(identity.ResourceContact, identity.ActionUpdate).
		PUT("/:id", h.Update).
		POST("/:id/activate", h.Activate).
		POST("/:id/deactivate", h.Deactivate)
	g.Require(identity.ResourceContact, identity.ActionDelete).
		DELETE("/:id", h.Delete).
		DELETE("/:id/categories/:categoryId", h.RemoveCategory)
	return g
}
