package domain

import (
	"fmt"
	"strings"
)

// Coordinates is a (latitude, longitude) pair in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are inside their geographic ranges.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Address is a structured street address, optionally geocoded.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	Coordinates  *Coordinates
	// PlaceName caches a resolved human-readable label for the location.
	// It is never a raw geocoding short-code (the resolver filters those).
	PlaceName *string
}

// Display returns the label shown to users: the cached place name when one
// exists, otherwise the structured address.
func (a Address) Display() string {
	if a.PlaceName != nil && strings.TrimSpace(*a.PlaceName) != "" {
		return *a.PlaceName
	}
	return a.Formatted()
}

// Formatted joins the structured fields into a single line, skipping blanks.
func (a Address) Formatted() string {
	var b strings.Builder
	if a.Street != "" {
		b.WriteString(a.Street)
		if a.Number != "" {
			b.WriteString(", " + a.Number)
		}
	}
	for _, part := range []string{a.Neighborhood, a.City, a.State} {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(part)
	}
	return b.String()
}

// Restaurant carries the fields the order and proximity flows depend on.
type Restaurant struct {
	ID                 int
	OwnerID            int
	Name               string
	DeliveryFee        float64
	MinimumOrder       float64
	AvgDeliveryMinutes int
	Active             bool
	Address            Address
}

// Product is a menu item. Name and price are snapshotted onto order items
// at creation time, so later menu edits never rewrite past orders.
type Product struct {
	ID           int
	RestaurantID int
	Name         string
	Price        float64
	Available    bool
	PrepMinutes  *int
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%.2f)", p.Name, p.Price)
}
