package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/auth"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  lgr,
	}
}

type CreateOrderRequest struct {
	RestaurantID    int                `json:"restaurant_id"`
	Items           []OrderItemRequest `json:"items"`
	DeliveryType    string             `json:"delivery_type"`
	DeliveryAddress *AddressRequest    `json:"delivery_address,omitempty"`
	PickupAddress   *AddressRequest    `json:"pickup_address,omitempty"`
	PaymentMethod   string             `json:"payment_method"`
}

type OrderItemRequest struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes,omitempty"`
}

type AddressRequest struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type AddressResponse struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type OrderItemResponse struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes,omitempty"`
}

type StatusEntryResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     *string   `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID               int                   `json:"id"`
	OrderNumber      string                `json:"order_number"`
	CustomerID       int                   `json:"customer_id"`
	RestaurantID     int                   `json:"restaurant_id"`
	Items            []OrderItemResponse   `json:"items"`
	Subtotal         float64               `json:"subtotal"`
	DeliveryFee      float64               `json:"delivery_fee"`
	Total            float64               `json:"total"`
	DeliveryType     string                `json:"delivery_type"`
	DeliveryAddress  *AddressResponse      `json:"delivery_address,omitempty"`
	PickupAddress    *AddressResponse      `json:"pickup_address,omitempty"`
	PaymentMethod    string                `json:"payment_method"`
	Status           string                `json:"status"`
	EstimatedReadyAt time.Time             `json:"estimated_ready_at"`
	History          []StatusEntryResponse `json:"history,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type CancelOrderRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type InvoiceResponse struct {
	OrderNumber    string                `json:"order_number"`
	IssuedAt       time.Time             `json:"issued_at"`
	CustomerID     int                   `json:"customer_id"`
	RestaurantName string                `json:"restaurant_name"`
	Items          []InvoiceLineResponse `json:"items"`
	Subtotal       float64               `json:"subtotal"`
	DeliveryFee    float64               `json:"delivery_fee"`
	Total          float64               `json:"total"`
	DeliveryType   string                `json:"delivery_type"`
	PaymentMethod  string                `json:"payment_method"`
	Status         string                `json:"status"`
}

type InvoiceLineResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if validationErrors := validateCreateOrderRequest(req); len(validationErrors) > 0 {
		h.logger.Error("validation_failed", "Order validation failed", requestID(r), map[string]interface{}{
			"errors": validationErrors,
		}, fmt.Errorf("validation failed"))
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	cmd := interfaces.CreateOrderCommand{
		RestaurantID:  req.RestaurantID,
		DeliveryType:  req.DeliveryType,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, interfaces.CreateOrderItemCommand{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	if req.DeliveryAddress != nil {
		cmd.DeliveryAddress = req.DeliveryAddress.toPayload()
	}
	if req.PickupAddress != nil {
		cmd.PickupAddress = req.PickupAddress.toPayload()
	}

	order, err := h.service.CreateOrder(r.Context(), actor, cmd)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID(r), nil, err)
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, "Invalid order id", http.StatusBadRequest, nil)
		return
	}

	order, err := h.service.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), actor)
	if err != nil {
		h.logger.Error("order_list_failed", "Failed to list orders", requestID(r), nil, err)
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) ListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	restaurantID, err := pathID(r, "restaurantID")
	if err != nil {
		respondError(w, "Invalid restaurant id", http.StatusBadRequest, nil)
		return
	}

	orders, err := h.service.ListRestaurantOrders(r.Context(), actor, restaurantID)
	if err != nil {
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, "Invalid order id", http.StatusBadRequest, nil)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "status", Message: "status is required"},
		})
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), actor, orderID, domain.Status(req.Status), req.Notes)
	if err != nil {
		h.logger.Error("status_update_failed", "Failed to update order status", requestID(r), map[string]interface{}{
			"order_id":   orderID,
			"new_status": req.Status,
		}, err)
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, "Invalid order id", http.StatusBadRequest, nil)
		return
	}

	var req CancelOrderRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}
	}

	order, err := h.service.CancelOrder(r.Context(), actor, orderID, req.Notes)
	if err != nil {
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respondError(w, "Authentication required", http.StatusUnauthorized, nil)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, "Invalid order id", http.StatusBadRequest, nil)
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), actor, orderID)
	if err != nil {
		respondError(w, err.Error(), statusForError(err), nil)
		return
	}

	resp := InvoiceResponse{
		OrderNumber:    invoice.OrderNumber,
		IssuedAt:       invoice.IssuedAt,
		CustomerID:     invoice.CustomerID,
		RestaurantName: invoice.RestaurantName,
		Subtotal:       invoice.Subtotal,
		DeliveryFee:    invoice.DeliveryFee,
		Total:          invoice.Total,
		DeliveryType:   string(invoice.DeliveryType),
		PaymentMethod:  string(invoice.PaymentMethod),
		Status:         string(invoice.Status),
	}
	for _, line := range invoice.Items {
		resp.Items = append(resp.Items, InvoiceLineResponse{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func validateCreateOrderRequest(req CreateOrderRequest) []ValidationError {
	var errors []ValidationError

	if req.RestaurantID < 1 {
		errors = append(errors, ValidationError{
			Field:   "restaurant_id",
			Message: "restaurant id is required",
		})
	}

	validDeliveryTypes := map[string]bool{
		"delivery": true,
		"pickup":   true,
	}
	if !validDeliveryTypes[req.DeliveryType] {
		errors = append(errors, ValidationError{
			Field:   "delivery_type",
			Message: "delivery type must be one of: delivery, pickup",
		})
	}

	validPaymentMethods := map[string]bool{
		"cash":        true,
		"credit_card": true,
		"pix":         true,
	}
	if !validPaymentMethods[req.PaymentMethod] {
		errors = append(errors, ValidationError{
			Field:   "payment_method",
			Message: "payment method must be one of: cash, credit_card, pix",
		})
	}

	switch req.DeliveryType {
	case "delivery":
		if req.DeliveryAddress == nil {
			errors = append(errors, ValidationError{
				Field:   "delivery_address",
				Message: "delivery address is required for delivery orders",
			})
		} else {
			errors = append(errors, validateAddress("delivery_address", *req.DeliveryAddress)...)
		}
		if req.PickupAddress != nil {
			errors = append(errors, ValidationError{
				Field:   "pickup_address",
				Message: "pickup address must not be present for delivery orders",
			})
		}
	case "pickup":
		if req.PickupAddress == nil {
			errors = append(errors, ValidationError{
				Field:   "pickup_address",
				Message: "pickup address is required for pickup orders",
			})
		} else {
			errors = append(errors, validateAddress("pickup_address", *req.PickupAddress)...)
		}
		if req.DeliveryAddress != nil {
			errors = append(errors, ValidationError{
				Field:   "delivery_address",
				Message: "delivery address must not be present for pickup orders",
			})
		}
	}

	if len(req.Items) < 1 {
		errors = append(errors, ValidationError{
			Field:   "items",
			Message: "order must contain at least 1 item",
		})
	} else if len(req.Items) > 20 {
		errors = append(errors, ValidationError{
			Field:   "items",
			Message: "order must not contain more than 20 items",
		})
	}

	for i, item := range req.Items {
		itemPrefix := fmt.Sprintf("items[%d]", i)

		if item.ProductID < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.product_id", itemPrefix),
				Message: "product id is required",
			})
		}
		if item.Quantity < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.quantity", itemPrefix),
				Message: "item quantity must be at least 1",
			})
		} else if item.Quantity > 50 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.quantity", itemPrefix),
				Message: "item quantity must not exceed 50",
			})
		}
	}

	return errors
}

func validateAddress(field string, addr AddressRequest) []ValidationError {
	var errors []ValidationError
	required := map[string]string{
		"street": addr.Street,
		"number": addr.Number,
		"city":   addr.City,
		"state":  addr.State,
	}
	for _, name := range []string{"street", "number", "city", "state"} {
		if strings.TrimSpace(required[name]) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.%s", field, name),
				Message: fmt.Sprintf("%s is required", name),
			})
		}
	}
	return errors
}

func (a AddressRequest) toPayload() *interfaces.AddressPayload {
	return &interfaces.AddressPayload{
		Street:       strings.TrimSpace(a.Street),
		Number:       strings.TrimSpace(a.Number),
		Neighborhood: strings.TrimSpace(a.Neighborhood),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
	}
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:               order.ID,
		OrderNumber:      order.Number,
		CustomerID:       order.CustomerID,
		RestaurantID:     order.RestaurantID,
		Subtotal:         order.Subtotal,
		DeliveryFee:      order.DeliveryFee,
		Total:            order.Total,
		DeliveryType:     string(order.DeliveryType),
		PaymentMethod:    string(order.PaymentMethod),
		Status:           string(order.Status),
		EstimatedReadyAt: order.EstimatedReadyAt,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	resp.DeliveryAddress = toAddressResponse(order.DeliveryAddress)
	resp.PickupAddress = toAddressResponse(order.PickupAddress)
	for _, entry := range order.History {
		resp.History = append(resp.History, StatusEntryResponse{
			Status:    string(entry.Status),
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
			Notes:     entry.Notes,
		})
	}
	return resp
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	return resp
}

func toAddressResponse(addr *domain.Address) *AddressResponse {
	if addr == nil {
		return nil
	}
	return &AddressResponse{
		Street:       addr.Street,
		Number:       addr.Number,
		Neighborhood: addr.Neighborhood,
		City:         addr.City,
		State:        addr.State,
	}
}

func pathID(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

func requestID(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}
