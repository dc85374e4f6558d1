package affiliate

// ContractRef is the contract a commission came from, as embedded in the
// commissions view. Nil when the referenced contract no longer exists.
type ContractRef struct {
	ID     uint    `json:"id"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// CommissionDTO is a commission with normalized timestamps. Absent source
// dates stay absent in the output.
type CommissionDTO struct {
	ID               uint         `json:"id"`
	Amount           float64      `json:"amount"`
	Status           string       `json:"status"`
	PaymentReference *string      `json:"paymentReference,omitempty"`
	PaymentMethod    string       `json:"paymentMethod,omitempty"`
	ApprovedDate     *string      `json:"approvedDate,omitempty"`
	PaymentDate      *string      `json:"paymentDate,omitempty"`
	CreatedAt        string       `json:"createdAt"`
	Contract         *ContractRef `json:"contract"`
}

// PaymentGroup aggregates the paid commissions that share one payment
// reference.
type PaymentGroup struct {
	PaymentReference string  `json:"paymentReference"`
	Amount           float64 `json:"amount"`
	CommissionIDs    []uint  `json:"commissionIds"`
	PaymentDate      *string `json:"paymentDate,omitempty"`
	PaymentMethod    string  `json:"paymentMethod,omitempty"`
}

// CommissionsResponse is the affiliate commissions view.
type CommissionsResponse struct {
	Commissions       []CommissionDTO `json:"commissions"`
	TotalEarnings     float64         `json:"totalEarnings"`
	PendingAmount     float64         `json:"pendingAmount"`
	PaidAmount        float64         `json:"paidAmount"`
	ThisMonthEarnings float64         `json:"thisMonthEarnings"`
	PaymentHistory    []PaymentGroup  `json:"paymentHistory"`
	UpcomingPayments  []CommissionDTO `json:"upcomingPayments"`
}

// ContractDTO is a contract as shown in the affiliate portal.
type ContractDTO struct {
	ID           uint    `json:"id"`
	ClientID     uint    `json:"clientId"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	ContractDate *string `json:"contractDate,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// ContractsResponse is the affiliate contracts view with summary counters.
type ContractsResponse struct {
	Contracts      []ContractDTO `json:"contracts"`
	TotalCount     int           `json:"totalCount"`
	TotalValue     float64       `json:"totalValue"`
	ActiveCount    int           `json:"activeCount"`
	CompletedCount int           `json:"completedCount"`
}

// RecentContractDTO is a contract row on the affiliate dashboard, with the
// client display name resolved.
type RecentContractDTO struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	ClientName string  `json:"clientName"`
	CreatedAt  string  `json:"createdAt"`
}

// RecentContractsResponse is the dashboard's recent contracts block.
type RecentContractsResponse struct {
	Contracts []RecentContractDTO `json:"contracts"`
}

// StatsResponse is the affiliate dashboard summary.
type StatsResponse struct {
	TotalEarnings      float64 `json:"totalEarnings"`
	PendingEarnings    float64 `json:"pendingEarnings"`
	PaidEarnings       float64 `json:"paidEarnings"`
	CommissionRate     float64 `json:"commissionRate"`
	TotalContracts     int     `json:"totalContracts"`
	ActiveContracts    int     `json:"activeContracts"`
	ActiveNegotiations int     `json:"activeNegotiations"`
	ConversionRate     int     `json:"conversionRate"`
	Status             string  `json:"status"`
}
