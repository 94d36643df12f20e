package domain

import (
	"regexp"
	"testing"
	"time"
)

func addr() *Address {
	return &Address{Street: "Rua Augusta", Number: "500", City: "São Paulo", State: "SP"}
}

func TestNewOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{4}$`)
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := NewOrderNumber(now)
		if !re.MatchString(number) {
			t.Fatalf("order number %q does not match expected format", number)
		}
		if seen[number] {
			t.Fatalf("duplicate order number %q within same millisecond", number)
		}
		seen[number] = true
	}
}

func TestOrderValidate(t *testing.T) {
	base := func() *Order {
		return &Order{
			DeliveryType:    DeliveryTypeDelivery,
			PaymentMethod:   PaymentPix,
			DeliveryAddress: addr(),
			Items:           []OrderItem{{ProductID: 1, Quantity: 1, Price: 10}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
	}{
		{"valid delivery", func(o *Order) {}, false},
		{"valid pickup", func(o *Order) {
			o.DeliveryType = DeliveryTypePickup
			o.DeliveryAddress = nil
			o.PickupAddress = addr()
		}, false},
		{"unknown delivery type", func(o *Order) { o.DeliveryType = "drone" }, true},
		{"unknown payment method", func(o *Order) { o.PaymentMethod = "check" }, true},
		{"no items", func(o *Order) { o.Items = nil }, true},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }, true},
		{"delivery without address", func(o *Order) { o.DeliveryAddress = nil }, true},
		{"delivery with both addresses", func(o *Order) { o.PickupAddress = addr() }, true},
		{"pickup without address", func(o *Order) {
			o.DeliveryType = DeliveryTypePickup
			o.DeliveryAddress = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base()
			tt.mutate(o)
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	o := &Order{
		DeliveryType: DeliveryTypeDelivery,
		Items: []OrderItem{
			{Price: 25, Quantity: 1},
			{Price: 15, Quantity: 2},
		},
	}
	o.ComputeTotals(5)

	if o.Subtotal != 55 {
		t.Errorf("Subtotal = %v, want 55", o.Subtotal)
	}
	if o.DeliveryFee != 5 {
		t.Errorf("DeliveryFee = %v, want 5", o.DeliveryFee)
	}
	if o.Total != o.Subtotal+o.DeliveryFee {
		t.Errorf("Total = %v, want subtotal + fee = %v", o.Total, o.Subtotal+o.DeliveryFee)
	}
}

func TestComputeTotalsPickupZeroesFee(t *testing.T) {
	o := &Order{
		DeliveryType: DeliveryTypePickup,
		Items:        []OrderItem{{Price: 30, Quantity: 1}},
	}
	o.ComputeTotals(5)

	if o.DeliveryFee != 0 {
		t.Errorf("DeliveryFee = %v, want 0 for pickup", o.DeliveryFee)
	}
	if o.Total != 30 {
		t.Errorf("Total = %v, want 30", o.Total)
	}
}

func TestDeliveryETA(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	got := DeliveryETA(now, 40)
	if want := now.Add(40 * time.Minute); !got.Equal(want) {
		t.Errorf("DeliveryETA = %v, want %v", got, want)
	}
}

func TestPickupETA(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		prepMinutes []int
		wantMinutes int
	}{
		{"no products with prep time", []int{0, 0}, 20 + 15},
		{"longest prep wins", []int{10, 50, 30}, 50 + 15},
		{"short prep is not padded to the default", []int{5}, 5 + 15},
		{"all items below default", []int{5, 10}, 10 + 15},
		{"unset item defaults, set item stays shorter", []int{0, 5}, 20 + 15},
		{"empty", nil, 20 + 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickupETA(now, tt.prepMinutes)
			if want := now.Add(time.Duration(tt.wantMinutes) * time.Minute); !got.Equal(want) {
				t.Errorf("PickupETA = %v, want %v", got, want)
			}
		})
	}
}

func TestStatusTerminality(t *testing.T) {
	terminal := map[Status]bool{
		StatusDelivered: true,
		StatusPickedUp:  true,
		StatusCancelled: true,
	}
	for _, s := range []Status{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusInDelivery, StatusPickedUp, StatusDelivered, StatusCancelled,
	} {
		if s.IsTerminal() != terminal[s] {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, s.IsTerminal(), terminal[s])
		}
	}
}
