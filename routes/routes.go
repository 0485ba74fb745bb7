package routes

import (
	"net/http"

	"mappa/auth"
	"mappa/collab"
	"mappa/middleware"
	"mappa/profile"
	"mappa/ratelim"
	"mappa/workspace"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
}

func AddWorkspaceRoutes(router *httprouter.Router) {
	router.POST("/api/workspaces", middleware.Authenticate(workspace.CreateWorkspace))
	router.GET("/api/workspaces/:workspaceid", middleware.Authenticate(workspace.GetWorkspace))
	router.POST("/api/workspaces/:workspaceid/join", middleware.Authenticate(workspace.JoinWorkspace))
	router.GET("/api/workspaces/:workspaceid/invite-qr", middleware.Authenticate(workspace.InviteQR))
	router.POST("/api/workspaces/:workspaceid/days", middleware.Authenticate(workspace.AddPlanDay))
	router.GET("/api/workspaces/:workspaceid/days", middleware.Authenticate(workspace.GetPlanDays))
	router.GET("/api/workspaces/:workspaceid/suggestions", middleware.Authenticate(workspace.GetSuggestions))
	router.POST("/api/workspaces/:workspaceid/suggestions", middleware.Authenticate(workspace.AddSuggestion))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/:userid", middleware.OptionalAuth(profile.GetProfile))
	router.PUT("/api/profile/avatar", middleware.Authenticate(profile.UploadAvatar))
}

// AddCollabRoutes wires the workspace room channel; the hub is passed in from
// main so its lifecycle stays there.
func AddCollabRoutes(router *httprouter.Router, hub *collab.Hub) {
	router.GET("/ws/workspace/:workspaceid", collab.ServeWS(hub))
}
