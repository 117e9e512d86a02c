package refdata

import "fmt"

// CountryError is returned when an alphabetic country code is absent from the
// reference dataset, or is empty after normalization.
type CountryError struct {
	Country string
}

func (e *CountryError) Error() string {
	if e.Country == "" {
		return "country: no country code given"
	}
	return fmt.Sprintf("country %q not found in reference dataset", e.Country)
}

// ServiceError is returned when a service code has no corresponding entry in
// the services or service text tables.
type ServiceError struct {
	Code string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %q not found in reference dataset", e.Code)
}

// TranslationError is returned when city-based disambiguation was required but
// no matching translation row exists, or when no usable location could be
// derived from the input at all.
type TranslationError struct {
	City    string
	Country string
}

func (e *TranslationError) Error() string {
	if e.City == "" && e.Country == "" {
		return "translation: no usable location given"
	}
	return fmt.Sprintf("no translation for city %q in country %q", e.City, e.Country)
}
