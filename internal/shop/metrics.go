package shop

import (
	"github.com/prometheus/client_golang/prometheus"

	"MiniCart/internal/cart"
)

type cartMetrics struct {
	ops *prometheus.CounterVec
}

func newCartMetrics(reg prometheus.Registerer, sessions *cart.Sessions) *cartMetrics {
	m := &cartMetrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_operations_total",
				Help: "Cart operations dispatched, by op",
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(
		m.ops,
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "cart_sessions",
				Help: "Live anonymous cart sessions",
			},
			func() float64 { return float64(sessions.Len()) },
		),
	)
	return m
}

func (m *cartMetrics) observe(op cart.Op) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(string(op)).Inc()
}
