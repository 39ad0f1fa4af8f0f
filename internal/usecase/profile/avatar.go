package profile

import (
	"context"
	"io"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/audit"
	"github.com/BruksfildServices01/restaurant-floor/internal/media"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
)

type AvatarStore interface {
	PutAvatar(ctx context.Context, restaurantID, userID string, data []byte) (string, error)
}

// Profile is the part of the session the avatar flow needs.
type Profile interface {
	User() (*models.User, bool)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
}

type UploadAvatar struct {
	profile Profile
	store   AvatarStore
	audit   *audit.Dispatcher
}

func NewUploadAvatar(profile Profile, store AvatarStore, audit *audit.Dispatcher) *UploadAvatar {
	return &UploadAvatar{profile: profile, store: store, audit: audit}
}

// Execute transcodes the upload, stores it and points the signed-in
// user's profile at the new URL.
func (uc *UploadAvatar) Execute(ctx context.Context, upload io.Reader) (*models.User, error) {
	user, ok := uc.profile.User()
	if !ok {
		return nil, apperr.Session("not_authenticated", nil)
	}
	if uc.store == nil {
		return nil, apperr.Validation("avatar_storage_unavailable")
	}

	data, err := media.Avatar(upload)
	if err != nil {
		return nil, err
	}

	url, err := uc.store.PutAvatar(ctx, user.RestaurantID, user.ID, data)
	if err != nil {
		return nil, err
	}

	updated, err := uc.profile.UpdateProfile(ctx, models.UserPatch{Avatar: &url})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: user.RestaurantID,
		UserID:       user.ID,
		Action:       "avatar_updated",
		Entity:       "user",
		EntityID:     user.ID,
	})
	return updated, nil
}
