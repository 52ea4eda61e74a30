package domain

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type LocationCount struct {
	Location string `json:"location"`
	Bookings int    `json:"bookings"`
}

type AdminStats struct {
	TotalGuides         int64            `json:"totalGuides"`
	TotalTravelers      int64            `json:"totalTravelers"`
	TotalDestinations   int64            `json:"totalDestinations"`
	TotalBookings       int64            `json:"totalBookings"`
	MonthlyBookings     int64            `json:"monthlyBookings"`
	LastMonthBookings   int64            `json:"lastMonthBookings"`
	BookingsChange      float64          `json:"bookingsChange"` // percent vs last month
	MonthlyRevenue      []MonthlyRevenue `json:"monthlyRevenue"`
	RecentBookings      []BookingDetail  `json:"recentBookings"`
	PopularDestinations []LocationCount  `json:"popularDestinations"`
}

type TravelerDashboard struct {
	User     *User           `json:"user"`
	Upcoming []BookingDetail `json:"upcomingBookings"`
	Past     []BookingDetail `json:"pastBookings"`
}
