package domain

// AddressGuess is a best-effort structured address extracted from a
// reverse-geocoding response.
type AddressGuess struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

// GeocodeResult is the value object every reverse-geocoding lookup returns.
// Lookups never fail with an error return: provider trouble leaves both
// fields nil and fills Err so callers can degrade to the structured address.
type GeocodeResult struct {
	PlaceName        *string
	FormattedAddress *string
	Address          *AddressGuess
	Err              string
}

// Failed reports whether the lookup produced no usable place name.
func (r GeocodeResult) Failed() bool {
	return r.Err != ""
}
