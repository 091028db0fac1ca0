package models

// DefaultShippingCountries are the ISO codes Stripe may collect a shipping address for.
var DefaultShippingCountries = []string{"AR", "ES", "MX", "CO", "US"}
