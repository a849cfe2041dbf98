package dto

import "github.com/noah-isme/academy-crm/internal/models"

// LoginRequest carries operator credentials. Accepted as JSON or form data.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// CreateStudentRequest is the add-student form.
type CreateStudentRequest struct {
	Name    string               `json:"name" validate:"required"`
	DOB     string               `json:"dob" validate:"required"`
	GroupID *int64               `json:"groupId"`
	Status  models.StudentStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

// CreateGroupRequest is the add-group form. IsActive defaults to true when omitted.
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateStaffRequest is the add-staff form. IsActive defaults to true when omitted.
type CreateStaffRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Position  string `json:"position" validate:"required"`
	IsActive  *bool  `json:"is_active"`
}

// RecordPaymentRequest is the record-payment form. Date may be empty for unpaid lines.
type RecordPaymentRequest struct {
	StudentID int64                `json:"studentId" validate:"required"`
	Amount    float64              `json:"amount" validate:"required,gt=0"`
	Date      string               `json:"date"`
	DueDate   string               `json:"dueDate" validate:"required"`
	Status    models.PaymentStatus `json:"status" validate:"required,oneof=Paid Due Overdue"`
}

// CreateContractRequest is the add-contract form. Empty dates default to today and one year on.
type CreateContractRequest struct {
	StudentID           int64  `json:"studentId" validate:"required"`
	ContractNumber      string `json:"contract_number" validate:"required"`
	ContractDate        string `json:"contract_date"`
	ExpiryDate          string `json:"expiry_date"`
	ResponsiblePersonID int64  `json:"responsible_person_id" validate:"required"`
	IsActive            *bool  `json:"is_active"`
	ExpiryReason        string `json:"expiry_reason"`
}

// AssignStudentRequest moves a student into a group.
type AssignStudentRequest struct {
	StudentID int64 `json:"studentId" validate:"required"`
}

// StudentFilter narrows the students view.
type StudentFilter struct {
	Search string
	Status models.StudentStatus
}

// StaffFilter narrows the staff view.
type StaffFilter struct {
	Search string
}
