package domain

// AnalyticsSummary aggregated salon figures for a date range
type AnalyticsSummary struct {
	TotalAppointments     int
	AppointmentsByStatus  map[AppointmentStatus]int
	AppointmentsByService map[int64]int
	AppointmentsByStaff   map[int64]int

	TotalRevenue     float64
	RevenueByMethod  map[PaymentMethod]float64
	PaymentsByMethod map[PaymentMethod]int

	AverageRating      float64
	ReviewCount        int
	RatingDistribution map[int]int

	UniqueClients    int
	ReturningClients int
	RetentionRate    float64
	CompletionRate   float64
}

// NewAnalyticsSummary returns a zero summary with initialized maps
func NewAnalyticsSummary() *AnalyticsSummary {
	dist := make(map[int]int, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		dist[r] = 0
	}
	return &AnalyticsSummary{
		AppointmentsByStatus:  make(map[AppointmentStatus]int),
		AppointmentsByService: make(map[int64]int),
		AppointmentsByStaff:   make(map[int64]int),
		RevenueByMethod:       make(map[PaymentMethod]float64),
		PaymentsByMethod:      make(map[PaymentMethod]int),
		RatingDistribution:    dist,
	}
}

// Aggregate builds the summary in one pass over each input.
// Inputs must already be limited to one salon and one period.
func Aggregate(appointments []*Appointment, payments []*Payment, reviews []*Review) *AnalyticsSummary {
	s := NewAnalyticsSummary()

	visits := make(map[int64]int)
	completed := 0
	for _, a := range appointments {
		if a == nil {
			continue
		}
		s.TotalAppointments++
		s.AppointmentsByStatus[a.Status]++
		s.AppointmentsByService[a.ServiceID]++
		s.AppointmentsByStaff[a.StaffID]++
		visits[a.ClientID]++
		if a.Status == StatusCompleted {
			completed++
		}
	}

	for _, p := range payments {
		if p == nil {
			continue
		}
		s.PaymentsByMethod[p.Method]++
		if p.IsSucceeded() {
			s.TotalRevenue += p.Amount
			s.RevenueByMethod[p.Method] += p.Amount
		}
	}

	ratingSum := 0
	for _, r := range reviews {
		if r == nil || r.Rating < MinRating || r.Rating > MaxRating {
			continue
		}
		s.ReviewCount++
		s.RatingDistribution[r.Rating]++
		ratingSum += r.Rating
	}

	s.UniqueClients = len(visits)
	for _, n := range visits {
		if n >= 2 {
			s.ReturningClients++
		}
	}

	s.AverageRating = ratio(ratingSum, s.ReviewCount)
	s.RetentionRate = ratio(s.ReturningClients, s.UniqueClients)
	s.CompletionRate = ratio(completed, s.TotalAppointments)

	return s
}

// ratio returns part/total, or 0 when total is 0
func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
