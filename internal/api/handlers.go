package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fastfoodbot/internal/database"
	"fastfoodbot/internal/export"
	"fastfoodbot/internal/models"

	"github.com/go-chi/chi/v5"
)

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// repoError переводит ошибки хранилища в HTTP-статусы.
func (s *Server) repoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("api request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- категории ---

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	categories, err := s.repo.ListCategories(r.Context(), activeOnly)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	category, err := s.repo.GetCategory(r.Context(), id)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if category.NameUz == "" || category.NameRu == "" {
		writeError(w, http.StatusBadRequest, "name_uz and name_ru are required")
		return
	}
	if err := s.repo.CreateCategory(r.Context(), &category); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	category.ID = id
	if err := s.repo.UpdateCategory(r.Context(), &category); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.repo.DeleteCategory(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// --- товары ---

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []*models.Product
		err      error
	)
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		availableOnly := r.URL.Query().Get("available") == "true"
		products, err = s.repo.ListProducts(r.Context(), categoryID, availableOnly)
	} else {
		products, err = s.repo.ListAllProducts(r.Context())
	}
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	product, err := s.repo.GetProduct(r.Context(), id)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if product.NameUz == "" || product.NameRu == "" || product.CategoryID == 0 {
		writeError(w, http.StatusBadRequest, "name_uz, name_ru and category_id are required")
		return
	}
	if product.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}
	if err := s.repo.CreateProduct(r.Context(), &product); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var product models.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	product.ID = id
	if err := s.repo.UpdateProduct(r.Context(), &product); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.repo.DeleteProduct(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	s.catalog.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// --- промокоды ---

func (s *Server) listPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := s.repo.ListPromoCodes(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promo_codes": promos})
}

func (s *Server) createPromo(w http.ResponseWriter, r *http.Request) {
	var promo models.PromoCode
	if err := decodeBody(r, &promo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if promo.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	if promo.DiscountPercent < 0 || promo.DiscountPercent > 100 {
		writeError(w, http.StatusBadRequest, "discount_percent must be in 0..100")
		return
	}
	if err := s.repo.CreatePromoCode(r.Context(), &promo); err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, promo)
}

func (s *Server) updatePromo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var promo models.PromoCode
	if err := decodeBody(r, &promo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	promo.ID = id
	if err := s.repo.UpdatePromoCode(r.Context(), &promo); err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

func (s *Server) deletePromo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.repo.DeletePromoCode(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- пользователи ---

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.GetAllUsers(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	total, err := s.repo.CountUsers(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "total": total})
}

// getUser ищет пользователя по telegram_id: админка оперирует именно им.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := s.repo.GetUserByTelegramID(r.Context(), id)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// --- заказы ---

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := q.Get("status")
	if status != "" && !models.IsValidOrderStatus(status) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", status))
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	orders, err := s.repo.ListOrders(r.Context(), status, limit, offset)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	order, err := s.repo.GetOrder(r.Context(), id)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.repo.UpdateOrderStatus(r.Context(), id, body.Status); err != nil {
		s.repoError(w, err)
		return
	}

	order, err := s.repo.GetOrder(r.Context(), id)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// --- статистика ---

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.GetDashboardStats(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	byStatus, err := s.repo.CountOrdersByStatus(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":            stats,
		"orders_by_status": byStatus,
	})
}

func (s *Server) dailyStats(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 || days > 365 {
		days = 30
	}
	stats, err := s.repo.GetDailyStats(r.Context(), days)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "daily": stats})
}

func (s *Server) popularProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	days, _ := strconv.Atoi(q.Get("days"))
	if days <= 0 || days > 365 {
		days = 30
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	since := time.Now().AddDate(0, 0, -days)
	products, err := s.repo.GetPopularProducts(r.Context(), since, limit)
	if err != nil {
		s.repoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "products": products})
}

// --- выгрузка ---

func (s *Server) exportOrders(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 || days > 365 {
		days = models.ExportRangeDays
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	orders, err := s.repo.ListOrdersSince(r.Context(), from)
	if err != nil {
		s.repoError(w, err)
		return
	}

	f, err := export.OrdersReport(orders, from, to)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build orders report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("orders_%s_to_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to stream orders report")
	}
}
