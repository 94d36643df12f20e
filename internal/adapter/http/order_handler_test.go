package http

import (
	"testing"
)

func TestValidateCreateOrderRequest(t *testing.T) {
	validAddress := &AddressRequest{
		Street: "Rua Augusta", Number: "500", City: "São Paulo", State: "SP",
	}
	validItems := []OrderItemRequest{{ProductID: 10, Quantity: 2}}

	tests := []struct {
		name       string
		req        CreateOrderRequest
		wantFields []string
	}{
		{
			name: "valid delivery order",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "delivery",
				DeliveryAddress: validAddress, PaymentMethod: "pix",
			},
		},
		{
			name: "valid pickup order",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "pickup",
				PickupAddress: validAddress, PaymentMethod: "cash",
			},
		},
		{
			name: "missing restaurant",
			req: CreateOrderRequest{
				Items: validItems, DeliveryType: "pickup",
				PickupAddress: validAddress, PaymentMethod: "cash",
			},
			wantFields: []string{"restaurant_id"},
		},
		{
			name: "unknown delivery type",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "drone",
				PaymentMethod: "cash",
			},
			wantFields: []string{"delivery_type"},
		},
		{
			name: "unknown payment method",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "pickup",
				PickupAddress: validAddress, PaymentMethod: "check",
			},
			wantFields: []string{"payment_method"},
		},
		{
			name: "delivery without address",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "delivery",
				PaymentMethod: "pix",
			},
			wantFields: []string{"delivery_address"},
		},
		{
			name: "delivery with pickup address too",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "delivery",
				DeliveryAddress: validAddress, PickupAddress: validAddress,
				PaymentMethod: "pix",
			},
			wantFields: []string{"pickup_address"},
		},
		{
			name: "pickup with delivery address too",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "pickup",
				PickupAddress: validAddress, DeliveryAddress: validAddress,
				PaymentMethod: "pix",
			},
			wantFields: []string{"delivery_address"},
		},
		{
			name: "incomplete address",
			req: CreateOrderRequest{
				RestaurantID: 1, Items: validItems, DeliveryType: "delivery",
				DeliveryAddress: &AddressRequest{Street: "Rua Augusta"},
				PaymentMethod:   "pix",
			},
			wantFields: []string{"delivery_address.number", "delivery_address.city", "delivery_address.state"},
		},
		{
			name: "no items",
			req: CreateOrderRequest{
				RestaurantID: 1, DeliveryType: "pickup",
				PickupAddress: validAddress, PaymentMethod: "cash",
			},
			wantFields: []string{"items"},
		},
		{
			name: "zero quantity",
			req: CreateOrderRequest{
				RestaurantID: 1, DeliveryType: "pickup",
				Items:         []OrderItemRequest{{ProductID: 10, Quantity: 0}},
				PickupAddress: validAddress, PaymentMethod: "cash",
			},
			wantFields: []string{"items[0].quantity"},
		},
		{
			name: "missing product id",
			req: CreateOrderRequest{
				RestaurantID: 1, DeliveryType: "pickup",
				Items:         []OrderItemRequest{{Quantity: 1}},
				PickupAddress: validAddress, PaymentMethod: "cash",
			},
			wantFields: []string{"items[0].product_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateCreateOrderRequest(tt.req)
			if len(tt.wantFields) == 0 {
				if len(got) != 0 {
					t.Fatalf("expected no validation errors, got %+v", got)
				}
				return
			}

			fields := make(map[string]bool, len(got))
			for _, ve := range got {
				fields[ve.Field] = true
			}
			for _, want := range tt.wantFields {
				if !fields[want] {
					t.Errorf("missing validation error for field %q, got %+v", want, got)
				}
			}
		})
	}
}
