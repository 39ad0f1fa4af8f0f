package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/auth"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
)

type AuthHandler struct {
	app *app.App
}

func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{app: a}
}

// --------- Requests ---------

type RegisterRequest struct {
	RestaurantName    string `json:"restaurant_name" binding:"required"`
	RestaurantPhone   string `json:"restaurant_phone"`
	RestaurantAddress string `json:"restaurant_address"`
	Timezone          string `json:"timezone"`
	Currency          string `json:"currency"`

	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.app.Session.SignUp(c.Request.Context(), auth.SignUpInput{
		RestaurantName:    req.RestaurantName,
		RestaurantPhone:   req.RestaurantPhone,
		RestaurantAddress: req.RestaurantAddress,
		Timezone:          req.Timezone,
		Currency:          req.Currency,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          req.Password,
		Phone:             req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.signedIn(c, httpresp.Created)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.app.Session.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.signedIn(c, httpresp.OK)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.app.Session.SignOut(c.Request.Context()); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// signedIn loads every store for the new scope and answers with the
// session's user and restaurant.
func (h *AuthHandler) signedIn(c *gin.Context, write func(*gin.Context, any)) {
	if err := h.app.Refresh(c.Request.Context()); err != nil {
		httperr.FromError(c, err)
		return
	}

	user, _ := h.app.Session.User()
	restaurant, _ := h.app.Stores.Restaurant()

	write(c, gin.H{
		"user":       user,
		"restaurant": restaurant,
	})
}
