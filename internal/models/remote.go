package models

import "strconv"

// Wire shapes exchanged with the academy API.

// TokenResponse is returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// StudentRecord is a student as the academy API stores it.
type StudentRecord struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Year      int    `json:"year"`
	GroupID   *int64 `json:"group_id"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// GroupList is the body of GET /students/groups.
type GroupList struct {
	Groups []Group `json:"groups"`
}

// StudentList is the body of GET /students/list. A missing students key is an error.
type StudentList struct {
	Students *[]StudentRecord `json:"students"`
}

// PersonList is the body of GET /students/responsible-persons.
type PersonList struct {
	Persons []ResponsiblePerson `json:"persons"`
}

// StudentPayload is the body of POST /students/.
type StudentPayload struct {
	Year     int    `json:"year"`
	FullName string `json:"full_name"`
	GroupID  *int64 `json:"group_id"`
	IsActive bool   `json:"is_active"`
}

// GroupPayload is the body of POST /students/groups.
type GroupPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// ResponsiblePersonPayload is the body of POST /students/responsible-persons.
type ResponsiblePersonPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	IsActive  bool   `json:"is_active"`
}

// Backend payment statuses.
const (
	BackendPaymentPaid    = "paid"
	BackendPaymentPending = "pending"
	PaymentSourceManual   = "manual"
)

// PaymentPayload is the body of POST /students/payments.
type PaymentPayload struct {
	StudentID   int64   `json:"student_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Status      string  `json:"status"`
	Source      string  `json:"source"`
	Note        string  `json:"note"`
}

// ContractPayload is the body of POST /students/contracts.
type ContractPayload struct {
	StudentID           int64   `json:"student_id"`
	ContractNumber      float64 `json:"contract_number"`
	ContractDate        string  `json:"contract_date"`
	ExpiryDate          string  `json:"expiry_date"`
	ResponsiblePersonID int64   `json:"responsible_person_id"`
	IsActive            bool    `json:"is_active"`
	ExpiryReason        string  `json:"expiry_reason"`
}

// APIError is a non-2xx answer from the academy API.
type APIError struct {
	Method string
	Path   string
	Status int
	// Detail is the server-provided message; empty when the body carried none.
	Detail string
	// Decoded is false when the error body was not JSON.
	Decoded bool
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Method + " " + e.Path + ": " + e.Detail
	}
	return e.Method + " " + e.Path + ": unexpected status " + strconv.Itoa(e.Status)
}
