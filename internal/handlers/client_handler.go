package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/dto"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

type ClientHandler struct {
	app *app.App
}

func NewClientHandler(a *app.App) *ClientHandler {
	return &ClientHandler{app: a}
}

type CreateClientRequest struct {
	FirstName           string   `json:"first_name" binding:"required"`
	LastName            string   `json:"last_name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	Tags                []string `json:"tags"`
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Preferences         []string `json:"preferences"`
	Notes               string   `json:"notes"`
}

type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List refetches the client cache, narrowed by ?query= on name, phone
// or email, and answers with tiered rows.
func (h *ClientHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	query := strings.TrimSpace(c.Query("query"))

	clients, err := h.app.Stores.Clients.Search(c.Request.Context(), actor.RestaurantID, query)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	rows := make([]dto.ClientDTO, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, clientRow(cl))
	}
	httpresp.List(c, rows)
}

func (h *ClientHandler) Get(c *gin.Context) {
	cl, ok := h.app.Stores.Clients.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "client_not_found", "client not found")
		return
	}
	httpresp.OK(c, gin.H{
		"client": cl,
		"tier":   views.ClientTier(cl.TotalSpent),
	})
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	cl, err := h.app.Clients.Create(c.Request.Context(), middleware.Actor(c), models.Client{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Tags:                req.Tags,
		Allergies:           req.Allergies,
		DietaryRestrictions: req.DietaryRestrictions,
		Preferences:         req.Preferences,
		Notes:               req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var patch models.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Clients.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), patch); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.app.Clients.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *ClientHandler) AddTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.ClientTags.AddTag(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Tag); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func (h *ClientHandler) RemoveTag(c *gin.Context) {
	if err := h.app.ClientTags.RemoveTag(c.Request.Context(), middleware.Actor(c), c.Param("id"), c.Param("tag")); err != nil {
		httperr.FromError(c, err)
		return
	}
	h.Get(c)
}

func clientRow(cl *models.Client) dto.ClientDTO {
	tags := []string(cl.Tags)
	if tags == nil {
		tags = []string{}
	}
	return dto.ClientDTO{
		ID:         cl.ID,
		Name:       cl.FullName(),
		Phone:      cl.Phone,
		Email:      cl.Email,
		Tags:       tags,
		VisitCount: cl.VisitCount,
		TotalSpent: cl.TotalSpent,
		Tier:       views.ClientTier(cl.TotalSpent),
	}
}
