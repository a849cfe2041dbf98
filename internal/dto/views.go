package dto

import "github.com/noah-isme/academy-crm/internal/models"

// MutationResult reports what a create-style action did to local state.
type MutationResult struct {
	Message        string                `json:"-"`
	Entity         models.Entity         `json:"entity"`
	Reconciliation models.Reconciliation `json:"reconciliation"`
	// SessionActive is false when the follow-up resync ended the session.
	SessionActive bool        `json:"session_active"`
	Record        interface{} `json:"record,omitempty"`
}

// InvoiceRun summarises a monthly invoice generation.
type InvoiceRun struct {
	Generated int              `json:"generated"`
	DueDate   string           `json:"dueDate"`
	Payments  []models.Payment `json:"payments"`
}

// StudentView is a student row with its group name resolved.
type StudentView struct {
	models.Student
	GroupName string `json:"groupName"`
}

// GroupView is a group card with its member count.
type GroupView struct {
	models.Group
	MemberCount int `json:"memberCount"`
}

// GroupDetail is a group with its member students.
type GroupDetail struct {
	models.Group
	Members []models.Student `json:"members"`
}

// PaymentView is a payment row with the student name resolved.
type PaymentView struct {
	models.Payment
	StudentName string `json:"studentName"`
}

// ContractView is a contract row with names resolved.
type ContractView struct {
	models.Contract
	StudentName           string `json:"studentName"`
	ResponsiblePersonName string `json:"responsiblePersonName"`
}

// DashboardSummary aggregates the headline numbers of the dashboard page.
type DashboardSummary struct {
	TotalStudents    int     `json:"totalStudents"`
	ActiveStudents   int     `json:"activeStudents"`
	Groups           int     `json:"groups"`
	Staff            int     `json:"staff"`
	PaymentsDue      int     `json:"paymentsDue"`
	PaymentsOverdue  int     `json:"paymentsOverdue"`
	RevenueThisMonth float64 `json:"revenueThisMonth"`
	OutstandingTotal float64 `json:"outstandingTotal"`
	Month            string  `json:"month"`
	Contracts        int     `json:"contracts"`
}
