package router

import (
	"fmt"
	"net/http"
	"path"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// Authorizer builds the handler that enforces resource/action on a route
type Authorizer func(resource, action string) gin.HandlerFunc

// Permission is the resource/action pair a route requires
type Permission struct {
	Resource string
	Action   string
}

// Code returns the permission in resource:action form
func (p Permission) Code() string {
	return identity.PermissionCode(p.Resource, p.Action)
}

// RouteInfo describes one registered route
type RouteInfo struct {
	Group      string
	Method     string
	Path       string
	Permission *Permission
}

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, authorize Authorizer) error
	Routes(basePath string) []RouteInfo
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	authorize  Authorizer
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthorizer sets the authorizer guarded routes are wrapped with
func WithAuthorizer(authorize Authorizer) RouterOption {
	return func(r *Router) {
		r.authorize = authorize
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Use adds middleware applied to every route under the API prefix
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// BasePath is the versioned API prefix
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup registers all routes with the engine. A guarded route without an
// authorizer is an error, so nothing is ever mounted unprotected by mistake.
func (r *Router) Setup() error {
	api := r.engine.Group(r.BasePath())
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}

	for _, registrar := range r.registrars {
		if err := registrar.RegisterRoutes(api, r.authorize); err != nil {
			return err
		}
	}
	return nil
}

// Routes lists every route of every registrar
func (r *Router) Routes() []RouteInfo {
	var out []RouteInfo
	for _, registrar := range r.registrars {
		out = append(out, registrar.Routes(r.BasePath())...)
	}
	return out
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method     string
	path       string
	handlers   []gin.HandlerFunc
	permission *Permission
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		subgroups:  make([]*DomainGroup, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) add(method, path string, perm *Permission, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:     method,
		path:       path,
		handlers:   handlers,
		permission: perm,
	})
	return dg
}

// GET registers a public GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, nil, handlers)
}

// POST registers a public POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, nil, handlers)
}

// PUT registers a public PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, nil, handlers)
}

// PATCH registers a public PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPatch, path, nil, handlers)
}

// DELETE registers a public DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, nil, handlers)
}

// Require returns a view of the group whose routes need resource/action
func (dg *DomainGroup) Require(resource, action string) *GuardedRoutes {
	return &GuardedRoutes{group: dg, perm: Permission{Resource: resource, Action: action}}
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup, authorize Authorizer) error {
	group := rg.Group(dg.prefix)

	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		handlers := route.handlers
		if route.permission != nil {
			if authorize == nil {
				return fmt.Errorf("route %s %s requires %s but no authorizer is configured",
					route.method, path.Join(group.BasePath(), route.path), route.permission.Code())
			}
			handlers = append([]gin.HandlerFunc{authorize(route.permission.Resource, route.permission.Action)}, handlers...)
		}
		group.Handle(route.method, route.path, handlers...)
	}

	for _, subgroup := range dg.subgroups {
		if err := subgroup.RegisterRoutes(group, authorize); err != nil {
			return err
		}
	}
	return nil
}

// Routes lists the group's routes, subgroups included, below basePath
func (dg *DomainGroup) Routes(basePath string) []RouteInfo {
	base := path.Join(basePath, dg.prefix)
	out := make([]RouteInfo, 0, len(dg.routes))
	for _, route := range dg.routes {
		full := base
		if route.path != "" {
			full = path.Join(base, route.path)
		}
		out = append(out, RouteInfo{
			Group:      dg.name,
			Method:     route.method,
			Path:       full,
			Permission: route.permission,
		})
	}
	for _, subgroup := range dg.subgroups {
		out = append(out, subgroup.Routes(base)...)
	}
	return out
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// GuardedRoutes registers routes on a DomainGroup that require one permission
type GuardedRoutes struct {
	group *DomainGroup
	perm  Permission
}

func (g *GuardedRoutes) GET(path string, handlers ...gin.HandlerFunc) *GuardedRoutes {
	g.group.add(http.MethodGet, path, &g.perm, handlers)
	return g
}

func (g *GuardedRoutes) POST(path string, handlers ...gin.HandlerFunc) *GuardedRoutes {
	g.group.add(http.MethodPost, path, &g.perm, handlers)
	return g
}

func (g *GuardedRoutes) PUT(path string, handlers ...gin.HandlerFunc) *GuardedRoutes {
	g.group.add(http.MethodPut, path, &g.perm, handlers)
	return g
}

func (g *GuardedRoutes) PATCH(path string, handlers ...gin.HandlerFunc) *GuardedRoutes {
	g.group.add(http.MethodPatch, path, &g.perm, handlers)
	return g
}

func (g *GuardedRoutes) DELETE(path string, handlers ...gin.HandlerFunc) *GuardedRoutes {
	g.group.add(http.MethodDelete, path, &g.perm, handlers)
	return g
}
