package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"desithreads-api/internal/domain"
	"desithreads-api/internal/metrics"
	"desithreads-api/internal/payment"
	orderrepo "desithreads-api/internal/repository/order"
	"github.com/google/uuid"
)

// minorUnitFactor converts catalog prices (whole currency units) into the
// gateway's minor unit (rupees to paise).
const minorUnitFactor = 100

var (
	// ErrInvalidAddress indicates the shipping address is missing required fields.
	ErrInvalidAddress = errors.New("shipping address incomplete")

	// ErrCheckoutInFlight indicates another checkout for the same user is
	// still running; the caller should retry once it settles.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
}

type orderRepo interface {
	CreateWithItems(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
	FinalizePaid(ctx context.Context, userID, gatewayOrderID, paymentID string) (*orderrepo.FinalizeResult, error)
}

// Service orchestrates the two checkout steps: creating a pending order
// against the payment gateway, and finalizing it once the gateway-signed
// callback is verified.
type Service struct {
	carts   cartRepo
	orders  orderRepo
	gateway payment.Gateway

	// secret is the gateway key secret used to recompute callback
	// signatures. It stays server-side; nothing here ever returns it.
	secret   string
	currency string

	logger  *log.Logger
	metrics *metrics.Checkout

	mu       sync.Mutex
	inflight map[string]struct{}
}

func New(carts cartRepo, orders orderRepo, gateway payment.Gateway, secret, currency string, logger *log.Logger, m *metrics.Checkout) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if currency == "" {
		currency = "INR"
	}
	return &Service{
		carts:    carts,
		orders:   orders,
		gateway:  gateway,
		secret:   secret,
		currency: currency,
		logger:   logger,
		metrics:  m,
		inflight: make(map[string]struct{}),
	}
}

// Intent is returned to the client to drive the interactive payment step.
type Intent struct {
	GatewayOrderID string `json:"transactionId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderID        string `json:"localOrderId"`
}

// Create reads the user's cart, computes the total from catalog prices,
// opens a gateway transaction and persists a pending order with item
// snapshots. The total is never taken from the client.
func (s *Service) Create(ctx context.Context, userID string, addr domain.Address) (*Intent, error) {
	if strings.TrimSpace(addr.Line1) == "" || strings.TrimSpace(addr.Pincode) == "" {
		return nil, ErrInvalidAddress
	}

	if !s.acquire(userID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.release(userID)

	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var total int64
	snapshots := make([]orderrepo.ItemInput, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, domain.ErrEmptyCart
		}
		total += item.Product.Price * int64(item.Quantity)
		snapshots = append(snapshots, orderrepo.ItemInput{
			ProductID:       item.ProductID,
			ProductTitle:    item.Product.Title,
			PriceAtPurchase: item.Product.Price,
			Quantity:        item.Quantity,
			Size:            item.Size,
			ImageURL:        item.Product.ImageURL,
		})
	}
	if total <= 0 {
		return nil, domain.ErrInvalidTotal
	}

	receipt := uuid.NewString()
	gwOrder, err := s.gateway.CreateOrder(ctx, total*minorUnitFactor, s.currency, receipt)
	if err != nil {
		s.logger.Printf("checkout: gateway order failed user=%s receipt=%s error=%v", userID, receipt, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	order, err := s.orders.CreateWithItems(ctx, orderrepo.CreateInput{
		UserID:          userID,
		GatewayOrderID:  gwOrder.ID,
		TotalAmount:     total,
		ShippingAddress: addr,
		Items:           snapshots,
	})
	if err != nil {
		// The gateway transaction exists but the local order does not; the
		// payment can never be reconciled, so treat it as a broken invariant.
		s.logger.Printf("checkout: persist order failed user=%s gateway_order=%s error=%v", userID, gwOrder.ID, err)
		return nil, fmt.Errorf("%w: persist order: %v", domain.ErrStoreInconsistency, err)
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	s.logger.Printf("checkout: order created user=%s order=%s gateway_order=%s total=%d", userID, order.ID, gwOrder.ID, total)
	return &Intent{
		GatewayOrderID: gwOrder.ID,
		Amount:         gwOrder.Amount,
		Currency:       gwOrder.Currency,
		OrderID:        order.ID,
	}, nil
}

type VerifyInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// Verify checks the gateway signature and finalizes the order. The
// signature check is the trust boundary: nothing is mutated unless the
// callback provably came from the gateway. Finalize is idempotent, so
// duplicated callbacks and client retries are safe.
func (s *Service) Verify(ctx context.Context, userID string, in VerifyInput) error {
	if !payment.VerifySignature(s.secret, in.GatewayOrderID, in.PaymentID, in.Signature) {
		if s.metrics != nil {
			s.metrics.SignatureFailures.Inc()
			s.metrics.PaymentsVerified.WithLabelValues("rejected").Inc()
		}
		s.logger.Printf("checkout: signature mismatch user=%s gateway_order=%s", userID, in.GatewayOrderID)
		return domain.ErrInvalidSignature
	}

	res, err := s.orders.FinalizePaid(ctx, userID, in.GatewayOrderID, in.PaymentID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentsVerified.WithLabelValues("error").Inc()
		}
		return err
	}

	for _, shortage := range res.Shortages {
		// Payment is captured; oversell is an operational issue, not a
		// reason to fail the request.
		if s.metrics != nil {
			s.metrics.StockShortages.Inc()
		}
		s.logger.Printf("checkout: stock short product=%s requested=%d available=%d order=%s", shortage.ProductID, shortage.Requested, shortage.Available, res.OrderID)
	}

	if s.metrics != nil {
		s.metrics.PaymentsVerified.WithLabelValues("ok").Inc()
	}
	if res.AlreadyPaid {
		s.logger.Printf("checkout: duplicate verify for paid order=%s", res.OrderID)
	} else {
		s.logger.Printf("checkout: payment verified order=%s payment=%s", res.OrderID, in.PaymentID)
	}
	return nil
}

func (s *Service) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return false
	}
	s.inflight[userID] = struct{}{}
	return true
}

func (s *Service) release(userID string) {
	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
}
