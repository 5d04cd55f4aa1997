package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/internal/domain/repository"
	"github.com/jhoicas/Khata-api/pkg/logger"
)

// RetryPolicy política de reintentos para la generación de PDFs.
type RetryPolicy struct {
	MaxRetries   uint64        // reintentos además del primer intento
	InitialDelay time.Duration // espera antes del primer reintento
}

// DefaultRetryPolicy un reintento tras 500ms.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 1, InitialDelay: 500 * time.Millisecond}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// ReportUseCase genera los PDFs de reportes de facturas, de abonos y de una factura individual.
type ReportUseCase struct {
	shopRepo  repository.ShopRepository
	partyRepo repository.PartyRepository
	bills     *BillUseCase
	payments  *PaymentUseCase
	renderer  ReportRenderer
	log       *logger.Logger
	now       Clock
	policy    RetryPolicy
}

// NewReportUseCase construye el caso de uso reutilizando los exports de facturas y abonos.
func NewReportUseCase(
	shopRepo repository.ShopRepository,
	partyRepo repository.PartyRepository,
	bills *BillUseCase,
	payments *PaymentUseCase,
	renderer ReportRenderer,
	log *logger.Logger,
	now Clock,
	policy RetryPolicy,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = ClockIn(nil)
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = DefaultRetryPolicy.InitialDelay
	}
	return &ReportUseCase{
		shopRepo:  shopRepo,
		partyRepo: partyRepo,
		bills:     bills,
		payments:  payments,
		renderer:  renderer,
		log:       log,
		now:       now,
		policy:    policy,
	}
}

// BillReportPDF reporte de facturas con los mismos filtros del listado.
// Con entityId se agrega el encabezado de la parte y la fila de saldo traído.
func (uc *ReportUseCase) BillReportPDF(ctx context.Context, shopID string, q dto.BillListQuery) ([]byte, string, error) {
	now := uc.now()
	filename := fmt.Sprintf("bill-report-%s.pdf", now.Format("2006-01-02"))
	pdf, err := uc.generate(ctx, "bills", shopID, func() ([]byte, error) {
		var (
			shop  *entity.Shop
			party *entity.Party
			bills []*entity.Bill
			total int
			label string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			shop, err = uc.shop(gctx, shopID)
			return err
		})
		if id := strings.TrimSpace(q.EntityID); id != "" {
			g.Go(func() (err error) {
				party, err = uc.party(gctx, shopID, id)
				return err
			})
		}
		g.Go(func() (err error) {
			bills, total, label, err = uc.bills.exportRows(gctx, shopID, q)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		r := report.BuildBillReport(uc.meta(shop, label, q.Search, now, total), party, bills)
		return uc.renderer.RenderReport(ctx, r)
	})
	return pdf, filename, err
}

// PaymentReportPDF reporte de abonos con subtotales por método.
func (uc *ReportUseCase) PaymentReportPDF(ctx context.Context, shopID string, q dto.PaymentListQuery) ([]byte, string, error) {
	now := uc.now()
	filename := fmt.Sprintf("payment-report-%s.pdf", now.Format("2006-01-02"))
	pdf, err := uc.generate(ctx, "payments", shopID, func() ([]byte, error) {
		var (
			shop     *entity.Shop
			party    *entity.Party
			payments []*entity.Payment
			total    int
			label    string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			shop, err = uc.shop(gctx, shopID)
			return err
		})
		if id := strings.TrimSpace(q.EntityID); id != "" {
			g.Go(func() (err error) {
				party, err = uc.party(gctx, shopID, id)
				return err
			})
		}
		g.Go(func() (err error) {
			payments, total, label, err = uc.payments.exportRows(gctx, shopID, q)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		r := report.BuildPaymentReport(uc.meta(shop, label, q.Search, now, total), party, payments)
		return uc.renderer.RenderReport(ctx, r)
	})
	return pdf, filename, err
}

// BillInvoicePDF comprobante imprimible de una factura.
func (uc *ReportUseCase) BillInvoicePDF(ctx context.Context, shopID, billID string) ([]byte, string, error) {
	bill, err := uc.bills.load(ctx, shopID, billID)
	if err != nil {
		return nil, "", err
	}
	filename := bill.BillNumber + ".pdf"
	pdf, err := uc.generate(ctx, "invoice", shopID, func() ([]byte, error) {
		var (
			shop  *entity.Shop
			party *entity.Party
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			shop, err = uc.shop(gctx, shopID)
			return err
		})
		g.Go(func() (err error) {
			party, err = uc.partyRepo.GetByID(gctx, shopID, bill.PartyID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return uc.renderer.RenderBillInvoice(ctx, shop, party, bill)
	})
	return pdf, filename, err
}

// generate ejecuta build con la política de reintentos. Los errores de dominio no se
// reintentan; agotados los reintentos se devuelve ErrReportFailed.
func (uc *ReportUseCase) generate(ctx context.Context, kind, shopID string, build func() ([]byte, error)) ([]byte, error) {
	var out []byte
	attempts := 0
	op := func() error {
		attempts++
		pdf, err := build()
		if err != nil {
			if isDomainError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = pdf
		return nil
	}
	notify := func(err error, wait time.Duration) {
		uc.log.Warn().Err(err).Str("report", kind).Str("shop_id", shopID).
			Int("attempt", attempts).Dur("retry_in", wait).Msg("report: reintentando")
	}

	err := backoff.RetryNotify(op, uc.policy.backOff(ctx), notify)
	switch {
	case err == nil:
		return out, nil
	case isDomainError(err):
		return nil, err
	case ctx.Err() != nil:
		return nil, ctx.Err()
	}
	uc.log.Error().Err(err).Str("report", kind).Str("shop_id", shopID).
		Int("attempts", attempts).Msg("report: generación fallida")
	return nil, fmt.Errorf("%w: %v", domain.ErrReportFailed, err)
}

func (uc *ReportUseCase) meta(shop *entity.Shop, period, search string, now time.Time, matched int) report.Meta {
	return report.Meta{
		ShopName:    shop.Name,
		PeriodLabel: period,
		Search:      strings.TrimSpace(search),
		GeneratedAt: now,
		MatchedRows: matched,
	}
}

func (uc *ReportUseCase) shop(ctx context.Context, shopID string) (*entity.Shop, error) {
	s, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *ReportUseCase) party(ctx context.Context, shopID, raw string) (*entity.Party, error) {
	id, err := entityID(raw)
	if err != nil {
		return nil, err
	}
	p, err := uc.partyRepo.GetByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrForbidden)
}
