// Package auth exchanges staff credentials for signed session tokens.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/validators"
)

type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, restaurant *models.Restaurant, owner *models.User) error
}

// Token is what a successful sign-in hands back to the session store.
type Token struct {
	AccessToken string
	UserID      string
	ExpiresAt   time.Time
}

type Claims struct {
	UserID       string
	RestaurantID string
	Role         models.UserRole
	ExpiresAt    time.Time
}

type SignUpInput struct {
	RestaurantName    string
	RestaurantPhone   string
	RestaurantAddress string
	Timezone          string
	Currency          string

	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

type Options struct {
	Secret string
	TTL    time.Duration

	// ValidateEmailDomain resolves the sign-up address domain over DNS.
	ValidateEmailDomain bool
}

// PasswordProvider checks bcrypt password hashes and issues HS256 tokens.
type PasswordProvider struct {
	users Users
	opts  Options
	now   func() time.Time
}

func NewPasswordProvider(users Users, opts Options) *PasswordProvider {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &PasswordProvider{users: users, opts: opts, now: time.Now}
}

// --------- Sign in / up ---------

func (p *PasswordProvider) SignIn(ctx context.Context, email, password string) (Token, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Token{}, apperr.Validation("credentials_required")
	}

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return Token{}, apperr.Session("invalid_credentials", nil)
		}
		return Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Token{}, apperr.Session("invalid_credentials", nil)
	}

	return p.Issue(user)
}

func (p *PasswordProvider) SignUp(ctx context.Context, in SignUpInput) (Token, error) {
	email := normalizeEmail(in.Email)

	switch {
	case strings.TrimSpace(in.RestaurantName) == "":
		return Token{}, apperr.Validation("restaurant_name_required")
	case strings.TrimSpace(in.FirstName) == "":
		return Token{}, apperr.Validation("name_required")
	case !strings.Contains(email, "@"):
		return Token{}, apperr.Validation("invalid_email")
	case len(in.Password) < 6:
		return Token{}, apperr.Validation("password_too_short")
	}

	if p.opts.ValidateEmailDomain && !validators.IsEmailDomainValid(ctx, email) {
		return Token{}, apperr.Validation("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Token{}, apperr.Remote("password_hash_failed", err)
	}

	restaurant := &models.Restaurant{
		Name:    strings.TrimSpace(in.RestaurantName),
		Phone:   in.RestaurantPhone,
		Address: in.RestaurantAddress,
		Email:   email,
	}
	restaurant.Settings = models.DefaultSettings(in.Currency, in.Timezone)

	owner := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        in.Phone,
		Role:         models.RoleOwner,
	}

	if err := p.users.Register(ctx, restaurant, owner); err != nil {
		return Token{}, err
	}

	return p.Issue(owner)
}

// --------- JWT ---------

func (p *PasswordProvider) Issue(user *models.User) (Token, error) {
	now := p.now()
	exp := now.Add(p.opts.TTL)

	claims := jwt.MapClaims{
		"sub":          user.ID,
		"restaurantId": user.RestaurantID,
		"role":         string(user.Role),
		"exp":          exp.Unix(),
		"iat":          now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(p.opts.Secret))
	if err != nil {
		return Token{}, apperr.Remote("token_sign_failed", err)
	}

	return Token{AccessToken: signed, UserID: user.ID, ExpiresAt: time.Unix(exp.Unix(), 0).UTC()}, nil
}

// Verify checks signature and expiry and returns the token's claims.
func (p *PasswordProvider) Verify(_ context.Context, raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(p.opts.Secret), nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !token.Valid {
		return Claims{}, apperr.Session("invalid_token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperr.Session("invalid_token_claims", nil)
	}

	userID, ok1 := claims["sub"].(string)
	restaurantID, ok2 := claims["restaurantId"].(string)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || userID == "" || restaurantID == "" {
		return Claims{}, apperr.Session("invalid_token_payload", nil)
	}

	out := Claims{UserID: userID, RestaurantID: restaurantID, Role: models.UserRole(role)}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
