// Package routing resolves a parcel destination to the physical sortation
// parameters the carrier needs: destination depot, origin and destination
// sort codes, service classification and service text. Resolution is a pure
// lookup over the reference dataset; repeated calls with equal input always
// return equal output.
package routing

import (
	"parcel-router/internal/refdata"
)

// countryOverrides remaps destination countries whose parcels are physically
// routed through a neighboring country's depot network. The override is
// unconditional and the remapped country is the one reported on the result.
var countryOverrides = map[string]string{
	// Liechtenstein is routed via Switzerland.
	"LI": "CH",
}

// cityRoutedCountries lists countries where a postcode alone cannot
// disambiguate the destination and a city-name translation is required.
var cityRoutedCountries = map[string]bool{
	"IE": true,
}

// Router resolves normalized destinations against the reference store.
// It is safe for concurrent use: the store is read-only and the router
// carries no mutable state.
type Router struct {
	store              *refdata.Store
	normalizer         *Normalizer
	defaultServiceCode string
	version            string
}

// NewRouter creates a router over the given reference store. originCountry is
// assumed for destinations without a country ("DE" when empty);
// defaultServiceCode is the service assumed for destinations without one
// ("101" when empty). The dataset version stamp is read once and echoed on
// every result.
func NewRouter(store *refdata.Store, originCountry, defaultServiceCode string) (*Router, error) {
	if originCountry == "" {
		originCountry = "DE"
	}
	if defaultServiceCode == "" {
		defaultServiceCode = "101"
	}

	version, err := store.Version()
	if err != nil {
		return nil, err
	}

	return &Router{
		store:              store,
		normalizer:         &Normalizer{OriginCountry: originCountry},
		defaultServiceCode: defaultServiceCode,
		version:            version,
	}, nil
}

// Normalize canonicalizes a raw destination without resolving it.
func (r *Router) Normalize(dest Destination) Destination {
	return r.normalizer.Normalize(dest)
}

// Route resolves a destination to its sortation parameters.
//
// A destination whose postcode matches no route range still resolves
// successfully with empty depot and sort code fields; only missing reference
// data (unknown country or service, unresolvable city) fails, with the typed
// errors of this package.
func (r *Router) Route(dest Destination) (*RouteInfo, error) {
	d := r.normalizer.Normalize(dest)

	country := d.Country
	if override, ok := countryOverrides[country]; ok {
		country = override
	}

	countryNum, err := r.store.CountryNumericCode(country)
	if err != nil {
		return nil, err
	}

	matchValue := d.PostCode
	if cityRoutedCountries[country] {
		// Postcodes cannot disambiguate these destinations; a resolvable
		// city is mandatory and replaces the postcode in the range query.
		if d.City == "" {
			return nil, &TranslationError{City: d.City, Country: country}
		}
		matchValue, err = r.store.TranslateLocation(d.City, country)
		if err != nil {
			return nil, err
		}
	} else if d.PostCode == "" {
		return nil, &TranslationError{}
	}

	serviceCode := d.ServiceCode
	if serviceCode == "" {
		serviceCode = r.defaultServiceCode
	}
	service, err := r.store.GetService(serviceCode)
	if err != nil {
		return nil, err
	}
	serviceText, err := r.store.ServiceText(serviceCode)
	if err != nil {
		return nil, err
	}
	serviceInfo := ""
	if serviceCode != r.defaultServiceCode {
		serviceInfo = serviceText
	}

	info := &RouteInfo{
		Country:             country,
		CountryNum:          countryNum,
		ServiceText:         serviceText,
		ServiceInfo:         serviceInfo,
		ServiceMark:         service.Flags,
		BarcodeID:           service.BarcodeID,
		GroupingPriority:    service.GroupingPriority,
		RoutingTableVersion: r.version,
		PostCode:            d.PostCode,
	}

	routes, err := r.store.RoutesFor(country, matchValue)
	if err != nil {
		return nil, err
	}
	selected, ok := selectRoute(routes)
	if !ok {
		// No fine-grained route for this postcode. Not an error: the result
		// stays valid with empty depot and sort code fields.
		return info, nil
	}

	info.OSort = selected.OriginSort
	info.DSort = selected.DestinationSort

	depots, err := r.store.DepotsFor(selected.ID)
	if err != nil {
		return nil, err
	}
	if len(depots) > 0 {
		info.DDepot = depots[0]
		if depot, err := r.store.GetDepot(info.DDepot); err == nil {
			info.IATACode = depot.IATACode
		}
	}

	return info, nil
}

// selectRoute picks a single route deterministically from the matching rows:
// the narrowest match (largest begin postcode) wins, ties fall to the first
// row in insertion order. The rows arrive id-ordered from the store.
func selectRoute(routes []refdata.RouteRecord) (refdata.RouteRecord, bool) {
	if len(routes) == 0 {
		return refdata.RouteRecord{}, false
	}

	selected := routes[0]
	for _, route := range routes[1:] {
		if refdata.ComparePostcodes(route.BeginPostCode, selected.BeginPostCode) > 0 {
			selected = route
		}
	}
	return selected, true
}
