package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout counts the outcomes of the two checkout operations. Signature
// failures get their own counter since they are the trust boundary signal
// worth alerting on.
type Checkout struct {
	OrdersCreated     prometheus.Counter
	PaymentsVerified  *prometheus.CounterVec
	SignatureFailures prometheus.Counter
	StockShortages    prometheus.Counter
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Checkout{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "orders_created_total",
			Help:      "Pending orders created against the payment gateway.",
		}),
		PaymentsVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "payments_verified_total",
			Help:      "Payment verification attempts by result.",
		}, []string{"result"}),
		SignatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "signature_failures_total",
			Help:      "Payment callbacks rejected for a bad signature.",
		}),
		StockShortages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "stock_shortages_total",
			Help:      "Paid order lines whose stock decrement was clamped at zero.",
		}),
	}
	reg.MustRegister(m.OrdersCreated, m.PaymentsVerified, m.SignatureFailures, m.StockShortages)
	return m
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
