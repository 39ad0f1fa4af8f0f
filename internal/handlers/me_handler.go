package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

type MeHandler struct {
	app *app.App
}

func NewMeHandler(a *app.App) *MeHandler {
	return &MeHandler{app: a}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	snap := h.app.Session.Snapshot()
	restaurant, _ := h.app.Stores.Restaurant()

	httpresp.OK(c, gin.H{
		"state":      snap.State.String(),
		"user":       snap.User,
		"restaurant": restaurant,
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	// the avatar only changes through an upload
	patch.Avatar = nil

	user, err := h.app.Session.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, user)
}

// UploadAvatar takes a multipart "avatar" file.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "avatar_required", "multipart field avatar is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "avatar_unreadable", err.Error())
		return
	}
	defer f.Close()

	user, err := h.app.Avatar.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, user)
}
