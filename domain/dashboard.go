package domain

// TodaySummary is the dashboard headline: sales and order count for the
// current day, cancelled orders excluded.
type TodaySummary struct {
	TotalSales  float64 `json:"total_sales"`
	TotalOrders int64   `json:"total_orders"`
}

// DailyPoint is one day of aggregated sales or order counts.
type DailyPoint struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// NameCount is a generic label/value pair for distribution charts
// (top brands, status distribution, payment methods).
type NameCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}
