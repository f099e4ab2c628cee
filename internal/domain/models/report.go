package models

// MonthlyReport is one bucket of the group-by-month contract report.
type MonthlyReport struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// MonthKey is "year-month", e.g. "1403-2".
	MonthKey string `json:"monthKey"`
	// MonthName is the localized month label, e.g. "اردیبهشت 1403".
	MonthName     string  `json:"monthName"`
	ContractCount int     `json:"contractCount"`
	CustomerTotal float64 `json:"customerTotal"`
	InternalTotal float64 `json:"internalTotal"`
}
