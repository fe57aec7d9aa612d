package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/application"
	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/models"
)

type principalKey struct{}

// BillingHandlers contains billing HTTP handlers
type BillingHandlers struct {
	processPayment      *application.ProcessPayment
	getPaymentDetails   *application.GetPaymentDetails
	createPayment       *application.CreatePayment
	updatePaymentStatus *application.UpdatePaymentStatus
	listPaymentMethods  *application.ListPaymentMethods
}

// NewBillingHandlers creates new billing handlers
func NewBillingHandlers(
	processPayment *application.ProcessPayment,
	getPaymentDetails *application.GetPaymentDetails,
	createPayment *application.CreatePayment,
	updatePaymentStatus *application.UpdatePaymentStatus,
	listPaymentMethods *application.ListPaymentMethods,
) *BillingHandlers {
	return &BillingHandlers{
		processPayment:      processPayment,
		getPaymentDetails:   getPaymentDetails,
		createPayment:       createPayment,
		updatePaymentStatus: updatePaymentStatus,
		listPaymentMethods:  listPaymentMethods,
	}
}

// PrincipalMiddleware resolves the authenticated actor from the identity
// headers set by the API gateway. Requests without an identity still reach
// handlers; use cases reject them.
func PrincipalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := models.NewID(userID)
		if err != nil {
			http.Error(w, "invalid user identity", http.StatusBadRequest)
			return
		}

		principal := domain.Principal{ID: id, Name: r.Header.Get("X-User-Name")}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, principal)))
	})
}

func principalFrom(ctx context.Context) domain.Principal {
	principal, _ := ctx.Value(principalKey{}).(domain.Principal)
	return principal
}

// ProcessPayment handles charge requests for an order's payment
func (h *BillingHandlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.ProcessPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd.OrderID = orderID
	cmd.Principal = principalFrom(r.Context())

	response, err := h.processPayment.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetPaymentDetails handles payment detail requests
func (h *BillingHandlers) GetPaymentDetails(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	query := &application.GetPaymentDetailsQuery{
		OrderID:   orderID,
		Principal: principalFrom(r.Context()),
	}

	response, err := h.getPaymentDetails.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CreatePayment handles payment creation requests
func (h *BillingHandlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreatePaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createPayment.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// UpdatePaymentStatus handles administrative status overrides
func (h *BillingHandlers) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")
	if paymentID == "" {
		http.Error(w, "Payment ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.UpdatePaymentStatusCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd.PaymentID = paymentID

	response, err := h.updatePaymentStatus.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ListPaymentMethods handles saved payment method listings
func (h *BillingHandlers) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	query := &application.ListPaymentMethodsQuery{
		Principal: principalFrom(r.Context()),
	}

	response, err := h.listPaymentMethods.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers billing routes
func (h *BillingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders/{orderID}/payment", func(r chi.Router) {
			r.Get("/", h.GetPaymentDetails)
			r.Post("/", h.ProcessPayment)
		})
		r.Get("/payment-methods", h.ListPaymentMethods)
		r.Post("/payments", h.CreatePayment)
		r.Put("/admin/payments/{paymentID}", h.UpdatePaymentStatus)
	})
}

// paymentFailedResponse is the body returned for declined charges
type paymentFailedResponse struct {
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	Provider string `json:"provider,omitempty"`
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var failed *domain.PaymentFailedError
	if errors.As(err, &failed) {
		writeJSON(w, http.StatusPaymentRequired, paymentFailedResponse{
			Status:   failed.Status,
			Reason:   failed.Reason,
			Provider: failed.Provider,
		})
		return
	}

	switch {
	case domain.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnsupportedOperation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
