package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gosafe-transit/service-routes/internal/application"
	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/middleware"
	"github.com/gosafe-transit/service-routes/internal/response"
)

// ContactHandler handles emergency contact endpoints.
type ContactHandler struct {
	contacts *application.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts *application.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// RegisterRoutes registers the /api/contacts endpoints. All of them
// require a valid token.
func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	g := r.Group("/api/contacts")
	g.Use(middleware.AuthMiddleware(jwtManager))
	g.GET("", h.List)
	g.POST("", h.Add)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/contacts.
func (h *ContactHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	contacts, err := h.contacts.ListContacts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"contacts": contacts})
}

// Add handles POST /api/contacts.
func (h *ContactHandler) Add(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req application.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name and phone are required.")
		return
	}

	contact, err := h.contacts.AddContact(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"contact": contact})
}

// Delete handles DELETE /api/contacts/:id.
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	contactID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid contact id.")
		return
	}

	if err := h.contacts.DeleteContact(c.Request.Context(), userID, contactID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Contact removed."})
}
