package flights

import (
	"strings"

	"travel-agency/internal/models"
)

const maxAirportResults = 10

var airports = []models.Airport{
	{Code: "HYD", City: "Hyderabad", Name: "Rajiv Gandhi International Airport", Country: "India"},
	{Code: "DEL", City: "New Delhi", Name: "Indira Gandhi International Airport", Country: "India"},
	{Code: "BOM", City: "Mumbai", Name: "Chhatrapati Shivaji Maharaj International Airport", Country: "India"},
	{Code: "BLR", City: "Bengaluru", Name: "Kempegowda International Airport", Country: "India"},
	{Code: "MAA", City: "Chennai", Name: "Chennai International Airport", Country: "India"},
	{Code: "CCU", City: "Kolkata", Name: "Netaji Subhash Chandra Bose International Airport", Country: "India"},
	{Code: "GOI", City: "Goa", Name: "Dabolim Airport", Country: "India"},

	{Code: "DXB", City: "Dubai", Name: "Dubai International Airport", Country: "UAE"},
	{Code: "SIN", City: "Singapore", Name: "Changi Airport", Country: "Singapore"},
	{Code: "BKK", City: "Bangkok", Name: "Suvarnabhumi Airport", Country: "Thailand"},
	{Code: "LHR", City: "London", Name: "Heathrow Airport", Country: "UK"},
	{Code: "JFK", City: "New York", Name: "John F. Kennedy International Airport", Country: "USA"},
	{Code: "CDG", City: "Paris", Name: "Charles de Gaulle Airport", Country: "France"},
	{Code: "HND", City: "Tokyo", Name: "Haneda Airport", Country: "Japan"},
	{Code: "SYD", City: "Sydney", Name: "Kingsford Smith Airport", Country: "Australia"},
}

// Airports returns the full static list
func Airports() []models.Airport {
	return append([]models.Airport(nil), airports...)
}

// SearchAirports matches the query case-insensitively against city, code,
// name and country and returns at most ten airports in list order.
func SearchAirports(query string) []models.Airport {
	q := strings.ToLower(query)
	result := make([]models.Airport, 0, maxAirportResults)
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.City), q) ||
			strings.Contains(strings.ToLower(a.Code), q) ||
			strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Country), q) {
			result = append(result, a)
		}
		if len(result) == maxAirportResults {
			break
		}
	}
	return result
}

// LookupAirport finds an airport by its exact code, ignoring case
func LookupAirport(code string) (models.Airport, bool) {
	for _, a := range airports {
		if strings.EqualFold(a.Code, code) {
			return a, true
		}
	}
	return models.Airport{}, false
}
