// Package refdata provides read-only access to the carrier's reference
// routing dataset: countries, depots, postcode-range routes, route-to-depot
// mappings, services, service texts and city-name translations.
//
// The dataset is loaded into the backing store by an external loader; this
// package only queries it. All query methods are side-effect-free reads, so a
// Store may be shared freely across concurrent callers.
package refdata

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the relational store holding the reference dataset.
type Store struct {
	*sql.DB
	driver string
}

// RouteRecord is a reference row mapping a destination country and postcode
// range to origin/destination sort codes.
type RouteRecord struct {
	ID                 int    `json:"id"`
	DestinationCountry string `json:"destination_country"`
	BeginPostCode      string `json:"begin_postcode"`
	EndPostCode        string `json:"end_postcode"`
	OriginSort         string `json:"o_sort"`
	DestinationSort    string `json:"d_sort"`
}

// Service is a carrier product identified by a three-digit code.
type Service struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	GroupingPriority string `json:"grouping_priority"`
	BarcodeID        string `json:"barcode_id"`
	Flags            string `json:"flags"`
}

// Depot is a carrier facility identified by a four-digit id.
type Depot struct {
	DepotNumber string `json:"depot_number"`
	IATACode    string `json:"iata_code"`
	GroupID     string `json:"group_id"`
	Name1       string `json:"name1"`
	Name2       string `json:"name2"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	PostCode    string `json:"postcode"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Fax         string `json:"fax"`
	Email       string `json:"email"`
	Web         string `json:"web"`
}

// Init opens the SQLite routing database at dbPath and ensures the schema
// exists. The file is expected to be pre-populated by the dataset loader;
// an empty file yields a valid store over an empty dataset.
func Init(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open routing database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping routing database: %w", err)
	}

	store := &Store{db, "sqlite3"}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate routing database: %w", err)
	}

	return store, nil
}

// InitPostgres opens a PostgreSQL-backed store via the pgx stdlib driver.
func InitPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open routing database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping routing database: %w", err)
	}

	store := &Store{db, "pgx"}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate routing database: %w", err)
	}

	return store, nil
}

// rebind rewrites ? placeholders to $n for the postgres driver. Queries are
// written with ? throughout; SQLite takes them as-is.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CountryNumericCode resolves a two-letter alphabetic country code to its
// numeric code. The input is uppercased before matching. Returns a
// CountryError when the code is absent from the dataset.
func (s *Store) CountryNumericCode(alphaCode string) (string, error) {
	alphaCode = strings.ToUpper(strings.TrimSpace(alphaCode))
	if alphaCode == "" {
		return "", &CountryError{Country: alphaCode}
	}

	var numericCode string
	err := s.QueryRow(s.rebind(`SELECT numeric_code FROM countries WHERE alpha_code = ?`), alphaCode).
		Scan(&numericCode)
	if err == sql.ErrNoRows {
		return "", &CountryError{Country: alphaCode}
	}
	if err != nil {
		return "", fmt.Errorf("failed to query country %q: %w", alphaCode, err)
	}

	return numericCode, nil
}

// GetService looks up the service row for a three-digit service code.
// Returns a ServiceError when the code is absent.
func (s *Store) GetService(code string) (*Service, error) {
	service := &Service{}
	err := s.QueryRow(
		s.rebind(`SELECT code, name, grouping_priority, barcode_id, flags FROM services WHERE code = ?`),
		code,
	).Scan(&service.Code, &service.Name, &service.GroupingPriority, &service.BarcodeID, &service.Flags)
	if err == sql.ErrNoRows {
		return nil, &ServiceError{Code: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query service %q: %w", code, err)
	}

	return service, nil
}

// ServiceText resolves the display text for a service code. Codes without a
// dedicated text row fall back to the service's short name. Returns a
// ServiceError when the code is unknown altogether.
func (s *Store) ServiceText(code string) (string, error) {
	var text string
	err := s.QueryRow(s.rebind(`SELECT text FROM servicetexts WHERE code = ?`), code).Scan(&text)
	if err == nil {
		return text, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to query service text %q: %w", code, err)
	}

	service, err := s.GetService(code)
	if err != nil {
		return "", err
	}
	return service.Name, nil
}

// TranslateLocation resolves a (city, country) pair to the numeric
// disambiguation code used for countries where the postcode alone is
// insufficient. Matching is case- and whitespace-insensitive. Returns a
// TranslationError when no translation row matches.
func (s *Store) TranslateLocation(city, country string) (string, error) {
	normalizedCity := strings.ToUpper(strings.Join(strings.Fields(city), " "))
	country = strings.ToUpper(strings.TrimSpace(country))

	var numericCode string
	err := s.QueryRow(
		s.rebind(`SELECT numeric_code FROM locations WHERE city = ? AND country = ?`),
		normalizedCity, country,
	).Scan(&numericCode)
	if err == sql.ErrNoRows {
		return "", &TranslationError{City: city, Country: country}
	}
	if err != nil {
		return "", fmt.Errorf("failed to query location %q/%q: %w", city, country, err)
	}

	return numericCode, nil
}

// RoutesFor returns all route rows whose postcode range contains the given
// postcode for the given country, in insertion order. More than one row may
// legitimately match; the caller is responsible for picking one.
func (s *Store) RoutesFor(country, postcode string) ([]RouteRecord, error) {
	rows, err := s.Query(
		s.rebind(`SELECT id, destination_country, begin_postcode, end_postcode, origin_sort, destination_sort
		 FROM routes WHERE destination_country = ? ORDER BY id`),
		country,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes for %q: %w", country, err)
	}
	defer rows.Close()

	var matches []RouteRecord
	for rows.Next() {
		var route RouteRecord
		err := rows.Scan(&route.ID, &route.DestinationCountry, &route.BeginPostCode,
			&route.EndPostCode, &route.OriginSort, &route.DestinationSort)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		if postcodeInRange(postcode, route.BeginPostCode, route.EndPostCode) {
			matches = append(matches, route)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes for %q: %w", country, err)
	}

	return matches, nil
}

// DepotsFor returns all depot ids mapped to a route id, in insertion order.
// A route may expand to more than one depot row.
func (s *Store) DepotsFor(routeID int) ([]string, error) {
	rows, err := s.Query(s.rebind(`SELECT depot FROM routedepots WHERE route = ? ORDER BY id`), routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query depots for route %d: %w", routeID, err)
	}
	defer rows.Close()

	var depots []string
	for rows.Next() {
		var depot string
		if err := rows.Scan(&depot); err != nil {
			return nil, fmt.Errorf("failed to scan route depot: %w", err)
		}
		depots = append(depots, depot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate depots for route %d: %w", routeID, err)
	}

	return depots, nil
}

// GetDepot looks up the full reference row for a depot id.
func (s *Store) GetDepot(depotNumber string) (*Depot, error) {
	depot := &Depot{}
	err := s.QueryRow(
		s.rebind(`SELECT depot_number, iata_code, group_id, name1, name2, address1, address2,
		        postcode, city, country, phone, fax, email, web
		 FROM depots WHERE depot_number = ?`),
		depotNumber,
	).Scan(&depot.DepotNumber, &depot.IATACode, &depot.GroupID, &depot.Name1, &depot.Name2,
		&depot.Address1, &depot.Address2, &depot.PostCode, &depot.City, &depot.Country,
		&depot.Phone, &depot.Fax, &depot.Email, &depot.Web)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("depot %q not found", depotNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query depot %q: %w", depotNumber, err)
	}

	return depot, nil
}

// Version returns the version stamp of the loaded reference dataset. An
// unstamped dataset yields the empty string.
func (s *Store) Version() (string, error) {
	var version string
	err := s.QueryRow(`SELECT version FROM dataset_meta LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query dataset version: %w", err)
	}
	return version, nil
}

// postcodeInRange reports whether postcode falls inside [begin, end). The feed
// mixes purely numeric postcodes with alphanumeric ones, so bounds compare
// numerically when postcode and both bounds are all digits and
// lexicographically otherwise. A row with equal bounds matches exactly its
// begin postcode.
func postcodeInRange(postcode, begin, end string) bool {
	if postcode == "" {
		return false
	}
	if begin == end {
		return ComparePostcodes(postcode, begin) == 0
	}
	return ComparePostcodes(postcode, begin) >= 0 && ComparePostcodes(postcode, end) < 0
}

// ComparePostcodes orders two postcodes: numerically when both are all
// digits, lexicographically otherwise.
func ComparePostcodes(a, b string) int {
	na, aNumeric := postcodeValue(a)
	nb, bNumeric := postcodeValue(b)
	if aNumeric && bNumeric {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func postcodeValue(postcode string) (int64, bool) {
	n, err := strconv.ParseInt(postcode, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
