package models

// Booking statuses
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Lead statuses
const (
	LeadNew      = "New"
	LeadFollowUp = "Follow-up"
	LeadBooked   = "Booked"
	LeadClosed   = "Closed"
	LeadLost     = "Lost"
)

// Invoice statuses
const (
	InvoicePaid   = "Paid"
	InvoiceUnpaid = "Unpaid"
)

// User roles and statuses
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleAgent   = "Agent"
	RoleSupport = "Support"

	UserActive   = "Active"
	UserInactive = "Inactive"
)

// Payment methods as chosen on the payment page, and as recorded on the booking.
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"

	PaymentLabelCard = "Credit Card"
	PaymentLabelUPI  = "UPI"
)

// Markup types
const (
	MarkupFixed      = "fixed"
	MarkupPercentage = "percentage"
)

// BookingTypeFlight is the only booking type the checkout produces.
const BookingTypeFlight = "Flight"

// DateLayout is the calendar-date layout used by every stored date field.
const DateLayout = "2006-01-02"

// Airport is an entry of the static airport list
type Airport struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// TravelerConfig describes who is travelling. It is never persisted.
type TravelerConfig struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
	Class    string `json:"class"`
}

// Count returns the number of fare-paying travelers. Infants travel free and
// an empty adult count is treated as one adult.
func (t TravelerConfig) Count() int {
	adults := t.Adults
	if adults <= 0 {
		adults = 1
	}
	return adults + t.Children
}

// SearchCriteria is the input to a flight search
type SearchCriteria struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	DepartDate string         `json:"departDate"`
	ReturnDate string         `json:"returnDate,omitempty"`
	Travelers  TravelerConfig `json:"travelers"`
}

// Flight is an offer returned by a search
type Flight struct {
	ID            string `json:"id"`
	Airline       string `json:"airline"`
	AirlineLogo   string `json:"airlineLogo"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Duration      string `json:"duration"`
	Price         int64  `json:"price"`
	Stops         int    `json:"stops"`
	From          string `json:"from"`
	To            string `json:"to"`
	Baggage       string `json:"baggage"`
	BookingToken  string `json:"bookingToken,omitempty"`
}

// FlightFilter holds the sidebar selections. An empty dimension does not restrict.
type FlightFilter struct {
	Stops          []string `json:"stops"`
	Airlines       []string `json:"airlines"`
	DepartureTimes []string `json:"departureTimes"`
	ArrivalTimes   []string `json:"arrivalTimes"`
}

// Passenger is a traveller named on a booking
type Passenger struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
}

// BookingDetails is the denormalized copy of the booked flight
type BookingDetails struct {
	FlightID     string      `json:"flightId"`
	Airline      string      `json:"airline"`
	FlightNumber string      `json:"flightNumber"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	Passengers   []Passenger `json:"passengers"`
}

// Booking represents a customer booking
type Booking struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Date          string         `json:"date"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	CustomerPhone string         `json:"customerPhone"`
	Status        string         `json:"status"`
	Amount        int64          `json:"amount"`
	PaymentID     string         `json:"paymentId,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
	PaymentDate   string         `json:"paymentDate,omitempty"`
	Details       BookingDetails `json:"details"`
}

func (b Booking) RecordID() string { return b.ID }

func (b Booking) WithRecordID(id string) Booking {
	b.ID = id
	return b
}

// FlightDetails is the optional flight block of a holiday package
type FlightDetails struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

// ItineraryDay is one day of a package itinerary
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Package is a holiday package in the catalogue
type Package struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Destination        string         `json:"destination"`
	Duration           string         `json:"duration"`
	Price              int64          `json:"price"`
	Image              string         `json:"image"`
	Rating             float64        `json:"rating"`
	Description        string         `json:"description"`
	HotelsIncluded     string         `json:"hotelsIncluded"`
	ActivitiesIncluded string         `json:"activitiesIncluded"`
	Inclusions         []string       `json:"inclusions"`
	Exclusions         []string       `json:"exclusions"`
	FlightDetails      *FlightDetails `json:"flightDetails,omitempty"`
	Itinerary          []ItineraryDay `json:"itinerary"`
}

func (p Package) RecordID() string { return p.ID }

func (p Package) WithRecordID(id string) Package {
	p.ID = id
	return p
}

// Lead is a sales enquiry
type Lead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"`
	Budget      int64  `json:"budget"`
	Source      string `json:"source"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (l Lead) RecordID() string { return l.ID }

func (l Lead) WithRecordID(id string) Lead {
	l.ID = id
	return l
}

// User is a staff account. The password is stored as entered.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

func (u User) RecordID() string { return u.ID }

func (u User) WithRecordID(id string) User {
	u.ID = id
	return u
}

// Public returns the user without its password
func (u User) Public() User {
	u.Password = ""
	return u
}

// InvoiceItem is a single invoice line
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Invoice is a customer invoice
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	Date            string        `json:"date"`
	DueDate         string        `json:"dueDate"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerMobile  string        `json:"customerMobile"`
	CustomerAddress string        `json:"customerAddress,omitempty"`
	Items           []InvoiceItem `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Discount        float64       `json:"discount"`
	GrandTotal      float64       `json:"grandTotal"`
	Status          string        `json:"status"`
}

func (i Invoice) RecordID() string { return i.ID }

func (i Invoice) WithRecordID(id string) Invoice {
	i.ID = id
	return i
}

// Markup is a price adjustment rule. It is stored but never applied.
type Markup struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// MarkupConfig groups the markup rules per product line
type MarkupConfig struct {
	Flight  Markup `json:"flight"`
	Hotel   Markup `json:"hotel"`
	Package Markup `json:"package"`
}

// CompanySettings is the singleton settings record
type CompanySettings struct {
	OfficeName         string       `json:"officeName"`
	BrandName          string       `json:"brandName"`
	InvoiceCompanyName string       `json:"invoiceCompanyName"`
	CompanyAddress     string       `json:"companyAddress"`
	CompanyMobile      string       `json:"companyMobile"`
	CompanyEmail       string       `json:"companyEmail"`
	GSTNumber          string       `json:"gstNumber"`
	KiwiAPIKey         string       `json:"kiwiApiKey"`
	MarkupConfig       MarkupConfig `json:"markupConfig"`
}

// DatabaseExport is the admin backup document
type DatabaseExport struct {
	Packages []Package       `json:"packages"`
	Leads    []Lead          `json:"leads"`
	Users    []User          `json:"users"`
	Invoices []Invoice       `json:"invoices"`
	Bookings []Booking       `json:"bookings"`
	Settings CompanySettings `json:"settings"`
}

// PaymentInput represents payment workflow input
type PaymentInput struct {
	BookingID string `json:"bookingId"`
	Method    string `json:"method"`
	DelayMS   int64  `json:"delayMs"`
}

// API Request/Response models

type CheckoutRequest struct {
	Flight     Flight      `json:"flight"`
	Passengers []Passenger `json:"passengers"`
	Email      string      `json:"email"`
	Mobile     string      `json:"mobile"`
}

type SubmitPaymentRequest struct {
	Method string `json:"method"`
}

type PaymentStatusResponse struct {
	Found   bool     `json:"found"`
	Booking *Booking `json:"booking,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type FlightSearchResponse struct {
	Flights  []Flight `json:"flights"`
	Airlines []string `json:"airlines"`
	Total    int      `json:"total"`
}

type FilterRequest struct {
	Flights []Flight     `json:"flights"`
	Filter  FlightFilter `json:"filter"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
