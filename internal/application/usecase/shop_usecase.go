package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zonas IANA aunque el host no tenga tzdata

	"github.com/google/uuid"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/filter"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/gstin"
)

// DefaultTimezone zona usada cuando la tienda no indica una.
const DefaultTimezone = "Asia/Kolkata"

// ShopUseCase aplica reglas de negocio para tiendas.
type ShopUseCase struct {
	repo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso con el puerto de persistencia.
func NewShopUseCase(repo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo}
}

// Create crea una nueva tienda con consecutivos de factura en cero.
// El GSTIN es opcional; si viene debe tener carácter de control válido.
func (uc *ShopUseCase) Create(ctx context.Context, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	tz := in.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: zona horaria %q", domain.ErrInvalidInput, tz)
	}
	gst := gstin.Normalize(in.GSTIN)
	if gst != "" {
		if err := gstin.Validate(gst); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		GSTIN:     gst,
		Timezone:  tz,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return ToShopResponse(shop), nil
}

// GetByID obtiene una tienda por ID; nil si no existe.
func (uc *ShopUseCase) GetByID(ctx context.Context, id string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToShopResponse(shop), nil
}

// Exists indica si la tienda sigue registrada.
func (uc *ShopUseCase) Exists(ctx context.Context, id string) (bool, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return shop != nil, nil
}

// List lista tiendas con paginación.
func (uc *ShopUseCase) List(ctx context.Context, page, limit int) (*dto.ListResponse[dto.ShopResponse], error) {
	s := filter.NewState(limit).WithPage(page).Normalize()
	list, total, err := uc.repo.List(ctx, s.Limit, s.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, sh := range list {
		items = append(items, *ToShopResponse(sh))
	}
	return &dto.ListResponse[dto.ShopResponse]{
		Data:       items,
		Pagination: filter.NewPagination(s.Page, s.Limit, total),
	}, nil
}

// ToShopResponse convierte la entidad a DTO.
func ToShopResponse(s *entity.Shop) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	return &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		GSTIN:     s.GSTIN,
		Timezone:  s.Timezone,
		CreatedAt: s.CreatedAt,
	}
}
