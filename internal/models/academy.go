package models

import "strings"

// StudentStatus is the display status derived from the server's is_active flag.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusInactive StudentStatus = "Inactive"
)

// StudentStatusFromActive maps the server flag onto the display enum.
func StudentStatusFromActive(active bool) StudentStatus {
	if active {
		return StudentStatusActive
	}
	return StudentStatusInactive
}

// PaymentStatus enumerates invoice states shown in the payments view.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusDue     PaymentStatus = "Due"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// StudentContact holds placeholder contact details; the academy API does not supply them yet.
type StudentContact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// StudentPerformance holds placeholder training statistics.
type StudentPerformance struct {
	Goals      int `json:"goals"`
	Assists    int `json:"assists"`
	Attendance int `json:"attendance"`
}

// Student is the display shape of a student record.
type Student struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	DOB         string              `json:"dob"`
	GroupID     *int64              `json:"groupId"`
	Status      StudentStatus       `json:"status"`
	JoinedDate  string              `json:"joinedDate"`
	AvatarURL   string              `json:"avatarUrl,omitempty"`
	Contact     *StudentContact     `json:"contact,omitempty"`
	Performance *StudentPerformance `json:"performance,omitempty"`
}

// Group is a training group. Coach, StudentIDs and MonthlyFee only exist in legacy seed data.
type Group struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at"`
	Coach       string   `json:"coach,omitempty"`
	StudentIDs  []int64  `json:"studentIds,omitempty"`
	MonthlyFee  *float64 `json:"monthlyFee,omitempty"`
}

// ResponsiblePerson is a staff member; the shape mirrors the server.
type ResponsiblePerson struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// FullName joins first and last name the way the staff table renders it.
func (p ResponsiblePerson) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Payment is an invoice line. Date is empty while unpaid.
type Payment struct {
	ID        string        `json:"id"`
	StudentID int64         `json:"studentId"`
	Amount    float64       `json:"amount"`
	Date      string        `json:"date"`
	DueDate   string        `json:"dueDate"`
	Status    PaymentStatus `json:"status"`
}

// Contract keeps the contract number as entered; only the outbound payload is numeric.
type Contract struct {
	ID                  string `json:"id"`
	StudentID           int64  `json:"studentId"`
	ContractNumber      string `json:"contract_number"`
	ContractDate        string `json:"contract_date"`
	ExpiryDate          string `json:"expiry_date"`
	ResponsiblePersonID int64  `json:"responsible_person_id"`
	IsActive            bool   `json:"is_active"`
	ExpiryReason        string `json:"expiry_reason,omitempty"`
}
