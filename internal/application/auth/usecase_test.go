package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Khata-api/internal/application/auth"
	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/pkg/jwt"
)

const shopID = "2b7e1a36-5b0f-4a43-9a53-6f1f3a1b9c01"

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUsers) CreateFirst(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.users {
		if other.ShopID == u.ShopID {
			return domain.ErrForbidden
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memShops struct{ shops map[string]*entity.Shop }

func (r memShops) Create(context.Context, *entity.Shop) error { return nil }
func (r memShops) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	return r.shops[id], nil
}
func (r memShops) List(context.Context, int, int) ([]*entity.Shop, int, error) { return nil, 0, nil }
func (r memShops) NextBillNumber(context.Context, string, entity.BillType) (int64, error) {
	return 0, nil
}

func newAuth() *auth.AuthUseCase {
	users := &memUsers{users: map[string]*entity.User{}}
	shops := memShops{shops: map[string]*entity.Shop{shopID: {ID: shopID, Name: "Sharma"}}}
	return auth.NewAuthUseCase(users, shops, auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, Issuer: "khata-api"})
}

func TestRegisterLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Owner@Shop.in ", Password: "password1", ShopID: shopID})
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.in", u.Email)
	assert.Equal(t, entity.RoleOwner, u.Role, "el primer usuario de la tienda es el dueño")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "owner@shop.in", Password: "password1", ShopID: shopID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "owner@shop.in", Password: "password1"})
	require.NoError(t, err)
	claims, err := jwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, shopID, claims.ShopID)
	assert.Equal(t, entity.RoleOwner, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "owner@shop.in", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_TiendaConUsuariosRechazaRegistroPublico(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "owner@shop.in", Password: "password1", ShopID: shopID})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "intruso@x.in", Password: "password1", ShopID: shopID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "intruso@x.in", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "el alta rechazada no persiste")
}

func TestAddMember_RolPorDefectoYTiendaInexistente(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	_, err := uc.AddMember(ctx, "9c1e0c1e-0000-4000-8000-000000000000", dto.CreateMemberRequest{Email: "a@b.in", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, err := uc.AddMember(ctx, shopID, dto.CreateMemberRequest{Email: "staff@b.in", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role)
	assert.Equal(t, "staff@b.in", u.Name)

	u, err = uc.AddMember(ctx, shopID, dto.CreateMemberRequest{Email: "socio@b.in", Password: "password1", Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, u.Role)

	_, err = uc.AddMember(ctx, shopID, dto.CreateMemberRequest{Email: "staff@b.in", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_TiendaInexistente(t *testing.T) {
	_, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.in", Password: "password1", ShopID: "9c1e0c1e-0000-4000-8000-000000000000"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	_, err := newAuth().Login(context.Background(), dto.LoginRequest{Email: "x@y.in", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
