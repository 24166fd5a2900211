package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	cartClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/cartservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case подтверждения удержанного бронирования
//
// Оплата на месте подтверждает бронирование сразу. Онлайн-оплата
// (депозит или полная) создает корзину в сервисе корзин; подтверждение
// придет событием размещения заказа, а до тех пор бронирование
// остается held со своим сроком удержания
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	cartClient   CartServiceClient
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	cartClient CartServiceClient,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		cartClient:   cartClient,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, mode=%s", req.BookingID, req.PaymentMode)

	// 1. Валидация входных данных
	mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Подтверждать можно только живое удержание
	if b.Status != domain.StatusHeld {
		uc.logger.Warn("ConfirmBooking: booking id=%d is %s, not held", b.ID, b.Status)
		return nil, ErrNotHeld
	}
	if b.HoldExpired(now) {
		uc.logger.Warn("ConfirmBooking: hold for booking id=%d expired at %s", b.ID, b.HoldExpiresAt)
		return nil, ErrHoldExpired
	}

	// 5. Получаем услугу для проверки платежной политики
	service, err := uc.catalogRepo.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Error("ConfirmBooking: service id=%d referenced by booking id=%d not found", b.ServiceID, b.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get service id=%d: %v", b.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Проверяем, что способ оплаты допустим для услуги
	if err := validateModeAllowed(service, mode); err != nil {
		uc.logger.Warn("ConfirmBooking: mode %s rejected for booking id=%d: %v", mode, b.ID, err)
		return nil, err
	}

	// 7. Оплата на месте - подтверждаем сразу
	if mode == domain.PaymentModePayInStore {
		return uc.confirmInStore(ctx, b, now)
	}

	// 8. Онлайн-оплата - создаем корзину
	return uc.startCheckout(ctx, b, service, mode, req.RegionID, now)
}

// confirmInStore подтверждает бронирование с оплатой на месте
func (uc *UseCase) confirmInStore(ctx context.Context, b *domain.Booking, now time.Time) (*Response, error) {
	if err := uc.bookingRepo.Confirm(ctx, b.ID, domain.PaymentModePayInStore, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Статус сменился между чтением и обновлением
			uc.logger.Warn("ConfirmBooking: booking id=%d is no longer held", b.ID)
			return nil, ErrNotHeld
		}
		uc.logger.Error("ConfirmBooking: failed to confirm booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	uc.publisher.StatusChanged(ctx, b.ID, string(domain.StatusConfirmed))
	uc.logger.Info("ConfirmBooking: booking id=%d confirmed, pay in store", b.ID)

	return &Response{
		BookingID:   b.ID,
		Outcome:     OutcomeConfirmed,
		Status:      string(domain.StatusConfirmed),
		PaymentMode: string(domain.PaymentModePayInStore),
		ConfirmedAt: &now,
	}, nil
}

// startCheckout создает корзину для онлайн-оплаты и фиксирует способ оплаты
// Бронирование остается held до события размещения заказа
func (uc *UseCase) startCheckout(
	ctx context.Context,
	b *domain.Booking,
	service *domain.Service,
	mode domain.PaymentMode,
	regionOverride *string,
	now time.Time,
) (*Response, error) {
	// Сумма к оплате берется из снимка цены на момент удержания
	amountDue := b.PriceAmount
	if mode == domain.PaymentModeDeposit {
		amountDue = b.DepositAmount
	}

	regionID := regionOverride
	if regionID == nil {
		regionID = service.RegionID
	}
	if regionID == nil {
		uc.logger.Warn("ConfirmBooking: no region for online payment, booking id=%d", b.ID)
		return nil, ErrRegionRequired
	}

	region, err := uc.cartClient.GetRegion(ctx, *regionID)
	if err != nil {
		if errors.Is(err, cartClient.ErrRegionNotFound) {
			uc.logger.Warn("ConfirmBooking: region %s not found", *regionID)
			return nil, ErrRegionNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get region %s: %v", *regionID, err)
		return nil, fmt.Errorf("%w: failed to get region: %v", ErrInternal, err)
	}
	if region.CurrencyCode != b.CurrencyCode {
		uc.logger.Warn("ConfirmBooking: currency mismatch, booking=%s region=%s", b.CurrencyCode, region.CurrencyCode)
	}

	cart, err := uc.cartClient.CreateCart(ctx, &cartClient.CreateCartRequest{
		RegionID:     region.ID,
		CurrencyCode: b.CurrencyCode,
		LineItem: cartClient.LineItem{
			Title:     b.ServiceName,
			UnitPrice: amountDue,
			Quantity:  1,
			Metadata: cartClient.LineItemMetadata{
				BookingID:   b.ID,
				PaymentMode: string(mode),
			},
		},
	})
	if err != nil {
		if errors.Is(err, cartClient.ErrCartRejected) {
			uc.logger.Warn("ConfirmBooking: cart rejected for booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrCartCreationFailed, err)
		}
		uc.logger.Error("ConfirmBooking: failed to create cart for booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to create cart: %v", ErrInternal, err)
	}

	if err := uc.bookingRepo.SetPaymentMode(ctx, b.ID, mode, now); err != nil {
		uc.logger.Error("ConfirmBooking: failed to set payment mode for booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to set payment mode: %v", ErrInternal, err)
	}

	uc.publisher.PaymentInitiated(ctx, b.ID, string(mode), cart.ID)
	uc.logger.Info("ConfirmBooking: checkout started for booking id=%d, cart=%s, amount_due=%d %s",
		b.ID, cart.ID, amountDue, b.CurrencyCode)

	return &Response{
		BookingID:   b.ID,
		Outcome:     OutcomeCheckoutRequired,
		Status:      string(domain.StatusHeld),
		PaymentMode: string(mode),
		CartID:      ptr.Ptr(cart.ID),
		AmountDue:   amountDue,
	}, nil
}
