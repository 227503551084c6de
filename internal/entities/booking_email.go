package entities

type BookingEmailData struct {
	CustomerName       string
	BookingCode        string
	ThemeName          string
	OccasionLabel      string
	EventDateFormatted string
	WindowFormatted    string
	City               string
	TokenFormatted     string
	TotalFormatted     string
	Status             string
	CurrentYear        int
}
