package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, shopRepo repository.ShopRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, shopRepo: shopRepo, jwtCfg: jwtCfg}
}

// RegisterUser registro público: da de alta al primer usuario de una tienda, que queda como
// dueño. Si la tienda ya tiene usuarios devuelve ErrForbidden; los siguientes los agrega el
// dueño con AddMember. El email es único en todo el sistema porque el login no indica tienda.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in.ShopID, in.Email, in.Password, in.Name, entity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.CreateFirst(ctx, user); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, fmt.Errorf("%w: la tienda ya tiene usuarios; el dueño debe agregarlo", domain.ErrForbidden)
		}
		return nil, err
	}
	return ToUserResponse(user), nil
}

// AddMember alta de un usuario en la tienda del dueño autenticado. El rol por defecto es staff.
func (uc *AuthUseCase) AddMember(ctx context.Context, shopID string, in dto.CreateMemberRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	user, err := uc.newUser(ctx, shopID, in.Email, in.Password, in.Name, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// newUser valida email único y tienda existente, y arma la entidad con el hash bcrypt.
func (uc *AuthUseCase) newUser(ctx context.Context, shopID, rawEmail, password, name, role string) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(rawEmail))
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound // tienda no existe
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.ShopID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		ShopID:    u.ShopID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
