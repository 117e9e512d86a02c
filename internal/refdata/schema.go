package refdata

import "fmt"

// migrate ensures the reference dataset schema exists. The external dataset
// loader populates the tables; an empty schema is a valid, empty dataset.
func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS countries (
			alpha_code TEXT PRIMARY KEY,
			numeric_code TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS depots (
			depot_number TEXT PRIMARY KEY,
			iata_code TEXT DEFAULT '',
			group_id TEXT DEFAULT '',
			name1 TEXT DEFAULT '',
			name2 TEXT DEFAULT '',
			address1 TEXT DEFAULT '',
			address2 TEXT DEFAULT '',
			postcode TEXT DEFAULT '',
			city TEXT DEFAULT '',
			country TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			fax TEXT DEFAULT '',
			email TEXT DEFAULT '',
			web TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS routes (
			id INTEGER PRIMARY KEY,
			destination_country TEXT NOT NULL,
			begin_postcode TEXT NOT NULL,
			end_postcode TEXT NOT NULL,
			origin_sort TEXT DEFAULT '',
			destination_sort TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS routedepots (
			id INTEGER PRIMARY KEY,
			route INTEGER NOT NULL,
			depot TEXT NOT NULL,
			FOREIGN KEY (route) REFERENCES routes (id)
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			code TEXT PRIMARY KEY,
			name TEXT DEFAULT '',
			grouping_priority TEXT DEFAULT '',
			barcode_id TEXT DEFAULT '',
			flags TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS servicetexts (
			code TEXT PRIMARY KEY,
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			city TEXT NOT NULL,
			country TEXT NOT NULL,
			numeric_code TEXT NOT NULL,
			PRIMARY KEY (city, country)
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_meta (
			version TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_country ON routes(destination_country)`,
		`CREATE INDEX IF NOT EXISTS idx_routedepots_route ON routedepots(route)`,
		`CREATE INDEX IF NOT EXISTS idx_locations_country ON locations(country)`,
	}

	for _, query := range queries {
		if _, err := s.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration query: %w", err)
		}
	}

	return nil
}
