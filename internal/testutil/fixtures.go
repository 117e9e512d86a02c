// Package testutil provides a seeded in-memory reference dataset shared by
// package tests. The fixture mirrors a small slice of a real routing dataset
// snapshot so tests can assert literal depot and sort code expectations.
package testutil

import (
	"testing"

	"parcel-router/internal/refdata"
)

// DatasetVersion is the version stamp of the fixture dataset snapshot.
const DatasetVersion = "20110905"

type countryRow struct {
	alpha   string
	numeric string
}

type depotRow struct {
	number, name, address, postcode, city, country, phone string
}

type routeRow struct {
	id                   int
	country, begin, end  string
	oSort, dSort         string
}

type routeDepotRow struct {
	id, route int
	depot     string
}

type serviceRow struct {
	code, name, groupingPriority, barcodeID, flags string
}

var (
	countries = []countryRow{
		{"DE", "276"},
		{"FR", "250"},
		{"CH", "756"},
		{"LI", "438"},
		{"GB", "826"},
		{"AT", "040"},
		{"JP", "392"},
		{"IE", "372"},
	}

	depots = []depotRow{
		{"0015", "Betriebsgesellschaft DPD GmbH", "Otto-Hahn-Strasse 5", "59423", "Unna", "DE", "+49-(0) 23 03-8 88-0"},
		{"0140", "DPD Depot Duesseldorf", "Hamborner Strasse 55", "40472", "Duesseldorf", "DE", ""},
		{"0142", "DPD Depot Bergisch Land", "Otto-Hahn-Strasse 1", "42897", "Remscheid", "DE", ""},
		{"0150", "DPD Depot Bonn", "Im Huehnerfeld 1", "53111", "Bonn", "DE", ""},
		{"0470", "DPD Depot Perpignan", "Avenue de Milan 1", "66000", "Perpignan", "FR", ""},
		{"0474", "DPD Depot Toulouse", "Rue de l'Industrie 4", "31000", "Toulouse", "FR", ""},
		{"0520", "DPD Depot Dublin", "Unit 5 Ballymount Park", "D12", "Dublin", "IE", ""},
		{"0617", "DPD Depot Buchs", "Langaeulistrasse 62", "9470", "Buchs", "CH", ""},
		{"1550", "DPD Depot Birmingham", "Roebuck Lane", "B66 1BY", "Smethwick", "GB", ""},
	}

	// Route 1 deliberately overlaps routes 2 and 3: the selector must prefer
	// the narrower range (the larger begin postcode) over the country-wide row.
	routes = []routeRow{
		{1, "DE", "40000", "50000", "42", "99"},
		{2, "DE", "42000", "42500", "42", "65"},
		{3, "DE", "42500", "43000", "42", "15"},
		{4, "DE", "53000", "53200", "50", "205"},
		{5, "FR", "66000", "67000", "16", "U50"},
		{6, "CH", "1000", "10000", "78", ""},
		{7, "GB", "A", "ZZ", "52", ""},
		{8, "IE", "1", "2", "52", ""},
	}

	routeDepots = []routeDepotRow{
		{1, 1, "0140"},
		{2, 2, "0142"},
		{3, 3, "0142"},
		{4, 4, "0150"},
		{5, 5, "0470"},
		{6, 5, "0474"},
		{7, 6, "0617"},
		{8, 7, "1550"},
		{9, 8, "0520"},
	}

	services = []serviceRow{
		{"101", "D", "", "37", ""},
		{"180", "AM1-NO", "", "022,160", ""},
		{"185", "AM1-UF", "", "37", ""},
	}

	serviceTexts = map[string]string{
		"185": "DPD 10:00 Unfrei / ex works",
	}

	locations = [][3]string{
		{"DUBLIN", "IE", "1"},
	}
)

// NewRouteStore opens an in-memory reference store seeded with the fixture
// dataset and closes it when the test finishes.
func NewRouteStore(t *testing.T) *refdata.Store {
	t.Helper()

	store, err := refdata.Init(":memory:")
	if err != nil {
		t.Fatalf("failed to open fixture store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	seed(t, store)
	return store
}

func seed(t *testing.T, store *refdata.Store) {
	t.Helper()

	exec := func(query string, args ...interface{}) {
		if _, err := store.Exec(query, args...); err != nil {
			t.Fatalf("failed to seed fixture row: %v", err)
		}
	}

	exec(`INSERT INTO dataset_meta (version) VALUES (?)`, DatasetVersion)

	for _, c := range countries {
		exec(`INSERT INTO countries (alpha_code, numeric_code) VALUES (?, ?)`, c.alpha, c.numeric)
	}
	for _, d := range depots {
		exec(`INSERT INTO depots (depot_number, name1, address1, postcode, city, country, phone)
		      VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.number, d.name, d.address, d.postcode, d.city, d.country, d.phone)
	}
	for _, r := range routes {
		exec(`INSERT INTO routes (id, destination_country, begin_postcode, end_postcode, origin_sort, destination_sort)
		      VALUES (?, ?, ?, ?, ?, ?)`,
			r.id, r.country, r.begin, r.end, r.oSort, r.dSort)
	}
	for _, rd := range routeDepots {
		exec(`INSERT INTO routedepots (id, route, depot) VALUES (?, ?, ?)`, rd.id, rd.route, rd.depot)
	}
	for _, s := range services {
		exec(`INSERT INTO services (code, name, grouping_priority, barcode_id, flags)
		      VALUES (?, ?, ?, ?, ?)`,
			s.code, s.name, s.groupingPriority, s.barcodeID, s.flags)
	}
	for code, text := range serviceTexts {
		exec(`INSERT INTO servicetexts (code, text) VALUES (?, ?)`, code, text)
	}
	for _, l := range locations {
		exec(`INSERT INTO locations (city, country, numeric_code) VALUES (?, ?, ?)`, l[0], l[1], l[2])
	}
}
