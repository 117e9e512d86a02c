package routing

// RouteInfo holds the resolved sortation parameters for one destination.
// It is immutable once built; the canonical external contract is the subset
// returned by RoutingData, the remaining fields are bookkeeping for label
// generation.
type RouteInfo struct {
	Country             string `json:"country"`
	CountryNum          string `json:"countrynum"`
	DDepot              string `json:"d_depot"`
	DSort               string `json:"d_sort"`
	OSort               string `json:"o_sort"`
	ServiceText         string `json:"service_text"`
	ServiceInfo         string `json:"serviceinfo"`
	ServiceMark         string `json:"service_mark"`
	BarcodeID           string `json:"barcode_id"`
	GroupingPriority    string `json:"grouping_priority"`
	IATACode            string `json:"iata_code"`
	RoutingTableVersion string `json:"routingtable_version"`
	PostCode            string `json:"postcode"`
}

// RoutingData is the fixed six-field canonical view of a resolved route.
// Field names are stable across versions.
type RoutingData struct {
	DDepot      string `json:"d_depot"`
	ServiceInfo string `json:"serviceinfo"`
	Country     string `json:"country"`
	DSort       string `json:"d_sort"`
	OSort       string `json:"o_sort"`
	ServiceText string `json:"service_text"`
}

// RoutingData returns the canonical export view of the resolved route.
func (r *RouteInfo) RoutingData() RoutingData {
	return RoutingData{
		DDepot:      r.DDepot,
		ServiceInfo: r.ServiceInfo,
		Country:     r.Country,
		DSort:       r.DSort,
		OSort:       r.OSort,
		ServiceText: r.ServiceText,
	}
}
