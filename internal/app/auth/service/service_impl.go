package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	repo "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const TokenTypeBearer = "bearer"

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) bool
	VerifyDummy(plaintext string)
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	Login(context.Context, dto.LoginDTO) (model.AccessToken, error)
	Identify(ctx context.Context, accessToken string) (model.Identity, error)
}

type authService struct {
	userRepo     repo.UserRepo
	attemptsRepo repo.LoginAttemptRepo
	jwtUtil      jwt.JWTUtil
	hasher       PasswordHasher
	cfg          *config.Config
	v            *validator.Validate
	log          *zap.Logger
}

func New(
	ur repo.UserRepo,
	ar repo.LoginAttemptRepo,
	jm jwt.JWTUtil,
	h PasswordHasher,
	cfg *config.Config,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	if ar == nil {
		ar = noopAttempts{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo: ur, attemptsRepo: ar, jwtUtil: jm, hasher: h, cfg: cfg, v: v, log: log,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := a.validateRegister(in); err != nil {
		return model.User{}, err
	}

	_, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return model.User{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user, err := a.userRepo.CreateUser(ctx, model.User{
		Email:        in.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user.PasswordHash = ""
	return user, nil
}

const msgMalformedRegistration = "malformed registration request"

// validateRegister reports the email problem first, then the password one.
func (a *authService) validateRegister(in dto.RegisterDTO) error {
	err := a.v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return customErrors.NewInvalidArgument(msgMalformedRegistration)
	}
	for _, fe := range verrs {
		if fe.StructField() == "Email" {
			return customErrors.ErrInvalidEmail
		}
	}
	for _, fe := range verrs {
		if fe.StructField() == "Password" {
			return customErrors.ErrWeakPassword
		}
	}
	return customErrors.NewInvalidArgument(msgMalformedRegistration)
}

// Authenticate never tells an unknown email apart from a wrong password.
func (a *authService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		a.hasher.VerifyDummy(password)
		return model.User{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Authenticate")
	}

	if !a.hasher.Verify(user.PasswordHash, password) {
		return model.User{}, customErrors.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// Login treats blank fields as bad credentials so they cost the same as a miss.
func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.AccessToken, error) {
	key := attemptsKey(in.Email)
	if a.lockedOut(ctx, key) {
		return model.AccessToken{}, customErrors.ErrTooManyAttempts
	}

	user, err := a.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if customErrors.IsInvalidCredentials(err) {
			if _, ferr := a.attemptsRepo.RegisterFailure(ctx, key, a.cfg.LoginLockoutWindow); ferr != nil {
				a.log.Warn("register login failure", zap.Error(ferr))
			}
		}
		return model.AccessToken{}, err
	}

	if err := a.attemptsRepo.Reset(ctx, key); err != nil {
		a.log.Warn("reset login failures", zap.Error(err))
	}

	ttl := a.jwtUtil.AccessTTL()
	token, exp, err := a.jwtUtil.GenerateAccessToken(user.Email, ttl)
	if err != nil {
		return model.AccessToken{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}

	return model.AccessToken{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   time.Until(exp).Round(time.Second),
	}, nil
}

func (a *authService) Identify(ctx context.Context, accessToken string) (model.Identity, error) {
	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		if customErrors.IsInternal(err) {
			return model.Identity{}, err
		}
		if customErrors.IsTokenExpired(err) {
			return model.Identity{}, customErrors.ErrTokenExpired
		}
		return model.Identity{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Identity{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.Identity{}, customErrors.WrapInternal(err, "Identify")
	}

	return model.Identity{UserID: user.ID, Email: user.Email}, nil
}

func (a *authService) lockedOut(ctx context.Context, key string) bool {
	if a.cfg.LoginMaxAttempts <= 0 {
		return false
	}
	n, err := a.attemptsRepo.Failures(ctx, key)
	if err != nil {
		a.log.Warn("read login failures", zap.Error(err))
		return false
	}
	return n >= a.cfg.LoginMaxAttempts
}

func attemptsKey(email string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(email)))
}

type noopAttempts struct{}

func (noopAttempts) Failures(context.Context, string) (int64, error) { return 0, nil }
func (noopAttempts) RegisterFailure(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}
func (noopAttempts) Reset(context.Context, string) error { return nil }
