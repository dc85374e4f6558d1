package client

// ContractDTO is a contract as shown in the client portal, with normalized
// timestamps and the delivery progress estimate.
type ContractDTO struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	ContractDate *string `json:"contractDate,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	Progress     int     `json:"progress"`
}

// ContractsResponse is the client contracts view with its summary counters.
type ContractsResponse struct {
	Contracts      []ContractDTO `json:"contracts"`
	TotalCount     int           `json:"totalCount"`
	TotalValue     float64       `json:"totalValue"`
	ActiveCount    int           `json:"activeCount"`
	CompletedCount int           `json:"completedCount"`
}

// StatsResponse is the client dashboard summary.
type StatsResponse struct {
	TotalContracts     int     `json:"totalContracts"`
	ActiveContracts    int     `json:"activeContracts"`
	CompletedContracts int     `json:"completedContracts"`
	TotalSpent         float64 `json:"totalSpent"`
	CurrentMonthSpent  float64 `json:"currentMonthSpent"`
	NextPaymentDate    *string `json:"nextPaymentDate,omitempty"`
	NextPaymentAmount  float64 `json:"nextPaymentAmount"`
}
