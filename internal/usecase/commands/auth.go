package commands

import (
	"context"

	"reservas-admin/internal/pkg/config"
	"reservas-admin/internal/pkg/errs"
	"reservas-admin/internal/pkg/jwt"
	"reservas-admin/internal/pkg/password"
)

var ErrInvalidCredentials = errs.New("invalid credentials")

const RoleAdmin = "admin"

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (string, error)
}

// authCommandsImpl authenticates the single admin principal configured via
// environment. There is no user table.
type authCommandsImpl struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
}

func NewAuthCommands(cfg config.Config, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		admin:      cfg.Admin,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(_ context.Context, email, plainPassword string) (string, error) {
	if email != a.admin.Email {
		return "", ErrInvalidCredentials
	}
	if err := password.ComparePassword(a.admin.PasswordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(email, RoleAdmin)
	if err != nil {
		return "", errs.Wrap(err, "failed to generate access token")
	}
	return token, nil
}
