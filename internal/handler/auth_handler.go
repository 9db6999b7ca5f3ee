package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gosafe-transit/service-routes/internal/application"
	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/middleware"
	"github.com/gosafe-transit/service-routes/internal/response"
)

// AuthHandler handles account, profile, history and saved-route endpoints.
type AuthHandler struct {
	users *application.UserService
	trips *application.TripService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *application.UserService, trips *application.TripService) *AuthHandler {
	return &AuthHandler{users: users, trips: trips}
}

// RegisterRoutes registers the /api/auth endpoints. Everything beyond
// signup and login requires a valid token.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	g := r.Group("/api/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)

	protected := g.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.GET("/me", h.Me)
	protected.PATCH("/profile", h.UpdateProfile)
	protected.POST("/change-password", h.ChangePassword)
	protected.GET("/history", h.History)
	protected.GET("/saved-routes", h.SavedRoutes)
	protected.POST("/saved-routes", h.SaveRoute)
	protected.DELETE("/saved-routes/:id", h.DeleteSavedRoute)
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req application.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name, email and password are required.")
		return
	}

	result, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"token": result.Token, "user": result.User})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required.")
		return
	}

	result, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"token": result.Token, "user": result.User})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// UpdateProfile handles PATCH /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req application.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid profile payload.")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req application.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Current and new password are required.")
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password updated."})
}

// History handles GET /api/auth/history.
func (h *AuthHandler) History(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	entries, err := h.trips.GetHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"history": entries})
}

// SavedRoutes handles GET /api/auth/saved-routes.
func (h *AuthHandler) SavedRoutes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routes, err := h.trips.GetSavedRoutes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"routes": routes})
}

// SaveRoute handles POST /api/auth/saved-routes.
func (h *AuthHandler) SaveRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req application.SaveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Origin and destination are required.")
		return
	}

	if err := h.trips.SaveRoute(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Route saved."})
}

// DeleteSavedRoute handles DELETE /api/auth/saved-routes/:id.
func (h *AuthHandler) DeleteSavedRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid route id.")
		return
	}

	if err := h.trips.DeleteSavedRoute(c.Request.Context(), userID, routeID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Route removed."})
}
