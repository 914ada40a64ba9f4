package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/internal/users"
	pkgauth "github.com/happyfood/happyfood-backend/pkg/auth"
	"github.com/happyfood/happyfood-backend/pkg/config"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
	"github.com/happyfood/happyfood-backend/pkg/security"
)

type stubUserRepo struct {
	byUsername map[string]*models.User
	createErr  error
	created    *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := s.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "happyfood",
		ExpirationMinutes: 30,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func TestRegisterCreatesUserWithHashedPassword(t *testing.T) {
	repo := &stubUserRepo{}
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: jwtCfg, PasswordConfig: pwCfg})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "joao",
		Email:    "joao@example.com",
		Password: "super-secret-1",
		Role:     "cliente",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Role != enums.RoleCustomer {
		t.Fatalf("unexpected role %s", resp.User.Role)
	}
	if repo.created.PasswordHash == "super-secret-1" {
		t.Fatal("password stored in plaintext")
	}
	ok, err := security.VerifyPassword("super-secret-1", repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	svc, _ := NewService(ServiceParams{UserRepo: &stubUserRepo{}, JWTConfig: jwtCfg, PasswordConfig: pwCfg})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "joao",
		Email:    "joao@example.com",
		Password: "super-secret-1",
		Role:     "admin",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &stubUserRepo{createErr: gorm.ErrDuplicatedKey}
	jwtCfg, pwCfg := testConfigs()
	svc, _ := NewService(ServiceParams{UserRepo: repo, JWTConfig: jwtCfg, PasswordConfig: pwCfg})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "joao",
		Email:    "joao@example.com",
		Password: "super-secret-1",
		Role:     "cliente",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoginMintsTokenWithRole(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	hash, err := security.HashPassword("super-secret-1", pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     "maria",
		Email:        "maria@example.com",
		PasswordHash: hash,
		Role:         enums.RoleRestaurant,
		Active:       true,
	}
	repo := &stubUserRepo{byUsername: map[string]*models.User{"maria": user}}
	svc, _ := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
		Now:            func() time.Time { return time.Now().UTC() },
	})

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "maria", Password: "super-secret-1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.RoleRestaurant {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	hash, _ := security.HashPassword("correct-password", pwCfg)
	repo := &stubUserRepo{byUsername: map[string]*models.User{
		"maria": {ID: uuid.New(), Username: "maria", PasswordHash: hash, Role: enums.RoleCustomer, Active: true},
	}}
	svc, _ := NewService(ServiceParams{UserRepo: repo, JWTConfig: jwtCfg, PasswordConfig: pwCfg})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "maria", Password: "wrong"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	svc, _ := NewService(ServiceParams{UserRepo: &stubUserRepo{}, JWTConfig: jwtCfg, PasswordConfig: pwCfg})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if appErr.Message() != invalidCredentialsMessage {
		t.Fatalf("login must not leak whether the user exists: %q", appErr.Message())
	}
}
