package flights

import (
	"slices"
	"strconv"
	"strings"

	"travel-agency/internal/models"
)

// Stop labels
const (
	StopsNonStop = "Non-stop"
	StopsOne     = "1 Stop"
	StopsTwoPlus = "2+ Stops"
)

// Time-of-day bucket labels
const (
	BucketMorning   = "Morning"
	BucketAfternoon = "Afternoon"
	BucketEvening   = "Evening"
	BucketNight     = "Night"
)

// Sidebar options as offered to the user
var (
	StopOptions = []string{StopsNonStop, StopsOne, StopsTwoPlus}
	TimeOptions = []string{"Morning (6AM-12PM)", "Afternoon (12PM-6PM)", "Evening (6PM-12AM)", "Night (12AM-6AM)"}
)

// StopLabel maps a stop count to its sidebar label
func StopLabel(stops int) string {
	switch {
	case stops <= 0:
		return StopsNonStop
	case stops == 1:
		return StopsOne
	default:
		return StopsTwoPlus
	}
}

// TimeBucket classifies an "HH:MM" string by its hour. Anything outside
// [6,24), including an unparseable hour, is Night.
func TimeBucket(hhmm string) string {
	hourPart, _, _ := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return BucketNight
	}

	switch {
	case hour >= 6 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 18:
		return BucketAfternoon
	case hour >= 18 && hour < 24:
		return BucketEvening
	default:
		return BucketNight
	}
}

// Apply returns the flights passing every non-empty dimension of the filter,
// in their original order. The input slice is not modified.
func Apply(list []models.Flight, f models.FlightFilter) []models.Flight {
	result := make([]models.Flight, 0, len(list))
	for _, fl := range list {
		if matches(fl, f) {
			result = append(result, fl)
		}
	}
	return result
}

func matches(fl models.Flight, f models.FlightFilter) bool {
	if len(f.Stops) > 0 && !slices.Contains(f.Stops, StopLabel(fl.Stops)) {
		return false
	}
	if len(f.Airlines) > 0 && !slices.Contains(f.Airlines, fl.Airline) {
		return false
	}
	if !timeMatches(fl.DepartureTime, f.DepartureTimes) {
		return false
	}
	return timeMatches(fl.ArrivalTime, f.ArrivalTimes)
}

func timeMatches(hhmm string, options []string) bool {
	if len(options) == 0 {
		return true
	}
	bucket := TimeBucket(hhmm)
	for _, opt := range options {
		if strings.HasPrefix(opt, bucket) {
			return true
		}
	}
	return false
}

// Airlines lists the distinct airline names in first-seen order
func Airlines(list []models.Flight) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, fl := range list {
		if !seen[fl.Airline] {
			seen[fl.Airline] = true
			names = append(names, fl.Airline)
		}
	}
	return names
}
