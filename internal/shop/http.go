package shop

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

const readyTimeout = 2 * time.Second

type Server struct {
	Catalog  catalog.Source
	Sessions *cart.Sessions
	Log      *zap.Logger

	metrics *cartMetrics
}

type addReq struct {
	ProductID int `json:"product_id"`
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Catalog.Ping(ctx); err != nil {
		s.log().Warn("readyz failed: catalog", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.List(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err, 0)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	p, found, err := s.Catalog.Get(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, r, err, id)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

// getCart never creates a session; callers without one see an empty cart.
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		kit.WriteJSON(w, http.StatusOK, newCartView("", cart.Empty()))
		return
	}
	kit.WriteJSON(w, http.StatusOK, newCartView(sess.id, sess.store.Snapshot()))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	req, err := kit.DecodeJSON[addReq](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ProductID <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id must be positive", nil)
		return
	}

	p, found, err := s.Catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		s.writeCatalogError(w, r, err, req.ProductID)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": req.ProductID})
		return
	}

	st := sess.store.Add(lineItemFrom(p))
	s.metrics.observe(cart.OpAdd)
	kit.WriteJSON(w, http.StatusOK, newCartView(sess.id, st))
}

func (s *Server) incrementItem(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, cart.IncrementAction)
}

func (s *Server) decrementItem(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, cart.DecrementAction)
}

// dispatch applies an id-keyed op. Absent ids are no-ops and still 200.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, action func(int) cart.Action) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "no session", nil)
		return
	}

	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	a := action(id)
	st := sess.store.Dispatch(a)
	s.metrics.observe(a.Op)
	kit.WriteJSON(w, http.StatusOK, newCartView(sess.id, st))
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, id int) {
	fields := []zap.Field{zap.Error(err)}
	if id != 0 {
		fields = append(fields, zap.Int("product_id", id))
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.log().Warn("catalog timeout", fields...)
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	case errors.Is(err, catalog.ErrUnavailable):
		s.log().Warn("catalog unavailable", fields...)
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	case errors.Is(err, catalog.ErrInvalidProduct):
		s.log().Warn("invalid catalog product", fields...)
		kit.WriteError(w, r, http.StatusBadGateway, "invalid catalog product", nil)
	default:
		s.log().Error("catalog error", fields...)
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	}
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
