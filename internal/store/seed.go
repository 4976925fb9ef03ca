package store

import "travel-agency/internal/models"

// Fixtures written the first time a collection is read

var SeedPackages = []models.Package{
	{
		ID:                 "1",
		Title:              "Majestic Dubai",
		Destination:        "Dubai, UAE",
		Duration:           "5 Days / 4 Nights",
		Price:              45000,
		Image:              "https://picsum.photos/800/600?random=1",
		Rating:             4.8,
		Description:        "Experience the luxury of Dubai.",
		HotelsIncluded:     "Grand Hyatt, Atlantis",
		ActivitiesIncluded: "Burj Khalifa, Desert Safari",
		Inclusions:         []string{"Breakfast", "Visa", "Transfers"},
		Exclusions:         []string{"Lunch", "Airfare"},
		Itinerary:          []models.ItineraryDay{},
	},
	{
		ID:                 "2",
		Title:              "Bali Bliss",
		Destination:        "Bali, Indonesia",
		Duration:           "6 Days / 5 Nights",
		Price:              62000,
		Image:              "https://picsum.photos/800/600?random=2",
		Rating:             4.9,
		Description:        "Relax in the pristine beaches of Bali.",
		HotelsIncluded:     "The Westin, Ubud Village Resort",
		ActivitiesIncluded: "Water Sports, Temple Tour",
		Inclusions:         []string{"Breakfast", "Transfers"},
		Exclusions:         []string{"Personal Expenses"},
		Itinerary:          []models.ItineraryDay{},
	},
}

var SeedUsers = []models.User{
	{ID: "1", Name: "Admin User", Email: "admin@hamsika.com", Mobile: "9999999999", Role: models.RoleAdmin, Status: models.UserActive, Password: "admin"},
	{ID: "2", Name: "Support Agent", Email: "support@hamsika.com", Mobile: "8888888888", Role: models.RoleSupport, Status: models.UserActive, Password: "user"},
}

var SeedLeads = []models.Lead{
	{ID: "1", Name: "Rahul Sharma", Email: "rahul@test.com", Mobile: "9876543210", Destination: "Dubai", TravelDate: "2023-12-10", Budget: 150000, Source: "Website", Status: models.LeadNew, CreatedAt: "2023-10-01"},
	{ID: "2", Name: "Priya Singh", Email: "priya@test.com", Mobile: "9123456780", Destination: "Bali", TravelDate: "2024-01-15", Budget: 80000, Source: "Instagram", Status: models.LeadFollowUp, CreatedAt: "2023-10-02"},
}

var SeedInvoices = []models.Invoice{
	{
		ID:             "1",
		InvoiceNumber:  "INV-001",
		Date:           "2023-10-15",
		DueDate:        "2023-10-15",
		CustomerName:   "Rahul Sharma",
		CustomerEmail:  "rahul@test.com",
		CustomerMobile: "9876543210",
		Items: []models.InvoiceItem{
			{ID: "1", Description: "Dubai Package Advance", Quantity: 1, UnitPrice: 20000, Total: 20000},
		},
		Subtotal:   20000,
		Tax:        1000,
		Discount:   0,
		GrandTotal: 21000,
		Status:     models.InvoicePaid,
	},
}

var DefaultSettings = models.CompanySettings{
	OfficeName:         "Hamsika Travels HO",
	BrandName:          "Hamsika Travels",
	InvoiceCompanyName: "Hamsika Travels Pvt Ltd",
	CompanyAddress:     "Plot No 123, Jubilee Hills, Hyderabad, Telangana - 500033",
	CompanyMobile:      "+91 9493936084",
	CompanyEmail:       "abhishekamt0@gmail.com",
	GSTNumber:          "36ABCDE1234F1Z5",
	KiwiAPIKey:         "",
	MarkupConfig: models.MarkupConfig{
		Flight:  models.Markup{Type: models.MarkupFixed, Value: 0},
		Hotel:   models.Markup{Type: models.MarkupFixed, Value: 0},
		Package: models.Markup{Type: models.MarkupFixed, Value: 0},
	},
}
