package routing

import "parcel-router/internal/refdata"

// The three failure kinds every resolution stage can surface. They are defined
// alongside the reference store, which raises most of them; the aliases keep
// the caller-facing surface in this package.
type (
	// CountryError means the alphabetic country code is not present in the
	// reference dataset, or was empty after normalization.
	CountryError = refdata.CountryError

	// ServiceError means a service code (explicit or default) has no entry in
	// the services or service text tables.
	ServiceError = refdata.ServiceError

	// TranslationError means city-based disambiguation was required but no
	// translation row matched, or no usable location could be derived at all.
	TranslationError = refdata.TranslationError
)
