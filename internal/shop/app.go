package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// CartRateLimit caps cart mutations per client IP per CartRateWindow.
	// Zero disables the limiter.
	CartRateLimit  int
	CartRateWindow time.Duration

	// TrustProxyHeaders keys the limiter on X-Forwarded-For instead of the
	// peer address. Enable only behind a proxy that overwrites the header.
	TrustProxyHeaders bool
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Sessions == nil {
		s.Sessions = cart.NewSessions(cart.SessionLimits{})
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry, deps.Service)
		r.Use(metrics.Middleware(kit.RoutePattern))
		s.metrics = newCartMetrics(deps.Registry, s.Sessions)

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)

	limiter := kit.NewIPRateLimiter(deps.CartRateLimit, deps.CartRateWindow)
	limiter.TrustForwardedFor = deps.TrustProxyHeaders

	r.Route("/cart", func(cr chi.Router) {
		cr.With(withSession(s.Sessions, false)).Get("/", s.getCart)

		cr.Group(func(mr chi.Router) {
			mr.Use(limiter.Middleware)
			mr.Use(withSession(s.Sessions, true))
			mr.Post("/items", s.addItem)
			mr.Post("/items/{id}/increment", s.incrementItem)
			mr.Post("/items/{id}/decrement", s.decrementItem)
		})
	})

	return r
}
