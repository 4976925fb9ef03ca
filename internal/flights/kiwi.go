package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travel-agency/internal/models"
)

// DefaultKiwiURL is the Tequila API base
const DefaultKiwiURL = "https://tequila-api.kiwi.com"

const (
	kiwiDefaultFrom = "HYD"
	kiwiDefaultTo   = "DEL"
	kiwiLimit       = "20"
	kiwiCurrency    = "INR"
)

// KiwiClient queries the Kiwi Tequila search endpoint
type KiwiClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewKiwiClient(baseURL string, timeout time.Duration) *KiwiClient {
	if baseURL == "" {
		baseURL = DefaultKiwiURL
	}
	return &KiwiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type kiwiResponse struct {
	Data []kiwiOffer `json:"data"`
}

type kiwiOffer struct {
	ID             string      `json:"id"`
	FlyFrom        string      `json:"flyFrom"`
	FlyTo          string      `json:"flyTo"`
	Airlines       []string    `json:"airlines"`
	Route          []kiwiRoute `json:"route"`
	LocalDeparture kiwiTime    `json:"local_departure"`
	LocalArrival   kiwiTime    `json:"local_arrival"`
	Duration       struct {
		Total int64 `json:"total"`
	} `json:"duration"`
	Price    float64 `json:"price"`
	BagLimit struct {
		HoldWeight float64 `json:"hold_weight"`
	} `json:"baglimit"`
	BookingToken string `json:"booking_token"`
}

type kiwiRoute struct {
	Airline  string      `json:"airline"`
	FlightNo json.Number `json:"flight_no"`
}

// kiwiTime accepts either an ISO-8601 timestamp or UNIX seconds
type kiwiTime struct {
	time.Time
}

func (t *kiwiTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		t.Time = parsed
		return nil
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", s, err)
	}
	t.Time = time.Unix(int64(secs), 0).UTC()
	return nil
}

// Search calls the live API and maps every offer. Offers without a route are skipped.
func (k *KiwiClient) Search(ctx context.Context, apiKey string, c models.SearchCriteria) ([]models.Flight, error) {
	endpoint, err := k.searchURL(c)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kiwi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("kiwi returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload kiwiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode kiwi response: %w", err)
	}

	flights := make([]models.Flight, 0, len(payload.Data))
	for _, offer := range payload.Data {
		if len(offer.Route) == 0 {
			continue
		}
		flights = append(flights, mapKiwiOffer(offer))
	}
	return flights, nil
}

func (k *KiwiClient) searchURL(c models.SearchCriteria) (string, error) {
	from := c.From
	if from == "" {
		from = kiwiDefaultFrom
	}
	to := c.To
	if to == "" {
		to = kiwiDefaultTo
	}

	depart, err := kiwiDate(c.DepartDate)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("fly_from", from)
	q.Set("fly_to", to)
	q.Set("date_from", depart)
	q.Set("date_to", depart)
	q.Set("curr", kiwiCurrency)
	q.Set("limit", kiwiLimit)

	if c.ReturnDate != "" {
		ret, err := kiwiDate(c.ReturnDate)
		if err != nil {
			return "", err
		}
		q.Set("return_from", ret)
		q.Set("return_to", ret)
	}

	return k.baseURL + "/v2/search?" + q.Encode(), nil
}

// kiwiDate converts yyyy-mm-dd to dd/mm/yyyy
func kiwiDate(date string) (string, error) {
	if date == "" {
		return "", nil
	}
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Format("02/01/2006"), nil
}

func mapKiwiOffer(offer kiwiOffer) models.Flight {
	route := offer.Route[0]

	code := route.Airline
	if len(offer.Airlines) > 0 {
		code = offer.Airlines[0]
	}

	baggage := "Cabin Only"
	if offer.BagLimit.HoldWeight > 0 {
		baggage = strconv.FormatFloat(offer.BagLimit.HoldWeight, 'f', -1, 64) + "kg Check-in"
	}

	total := offer.Duration.Total
	return models.Flight{
		ID:            offer.ID,
		Airline:       route.Airline,
		AirlineLogo:   "https://images.kiwi.com/airlines/64/" + code + ".png",
		FlightNumber:  route.Airline + " " + route.FlightNo.String(),
		DepartureTime: clock(offer.LocalDeparture.Time),
		ArrivalTime:   clock(offer.LocalArrival.Time),
		Duration:      fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60),
		Price:         int64(math.Ceil(offer.Price)),
		Stops:         len(offer.Route) - 1,
		From:          offer.FlyFrom,
		To:            offer.FlyTo,
		Baggage:       baggage,
		BookingToken:  offer.BookingToken,
	}
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
