package types

import (
	"time"

	"github.com/zoe5466/Gudiee-sub001/pricing"
)

// Role values for User.Role.
const (
	RoleCustomer = "customer"
	RoleGuide    = "guide"
)

// Order status values.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

// KYC status values for User.KYCStatus.
const (
	KYCPending  = "pending"
	KYCVerified = "verified"
)

// Payment methods accepted by the payment endpoint.
const (
	PaymentCreditCard   = "credit_card"
	PaymentLinePay      = "line_pay"
	PaymentBankTransfer = "bank_transfer"
)

// Date and time layouts used by booking requests.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// User is a marketplace account.
type User struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Email       string    `json:"email" yaml:"email"`
	Phone       string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Role        string    `json:"role" yaml:"role"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
	Bio         string    `json:"bio,omitempty" yaml:"bio,omitempty"`
	Languages   []string  `json:"languages,omitempty" yaml:"languages,omitempty"`
	Specialties []string  `json:"specialties,omitempty" yaml:"specialties,omitempty"`
	Experience  int       `json:"experienceYears,omitempty" yaml:"experience_years,omitempty"`
	KYCStatus   string    `json:"kycStatus,omitempty" yaml:"kyc_status,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

// Service is a bookable tour offered by a guide.
type Service struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"` // markdown
	Location        string   `json:"location" yaml:"location"`
	Price           int64    `json:"price" yaml:"price"`
	Currency        string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	DurationHours   float64  `json:"duration" yaml:"duration_hours"`
	MinParticipants int      `json:"minParticipants,omitempty" yaml:"min_participants,omitempty"`
	MaxParticipants int      `json:"maxParticipants" yaml:"max_participants"`
	GuideID         string   `json:"guideId" yaml:"guide_id"`
	GuideName       string   `json:"guideName,omitempty" yaml:"guide_name,omitempty"`
	Rating          float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	StartTimes      []string `json:"startTimes,omitempty" yaml:"start_times,omitempty"`
}

// Customer is the contact attached to an order.
type Customer struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Nationality      string `json:"nationality,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	ServiceID       string   `json:"serviceId"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	Participants    int      `json:"participants"`
	Customer        Customer `json:"customer"`
	SpecialRequests string   `json:"specialRequests,omitempty"`
	Document        string   `json:"document,omitempty"` // data URL
}

// PaymentRequest is the body of POST /api/orders/{id}/payment.
type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	PaymentToken  string `json:"paymentToken"`
}

// Order is a booking of a service.
type Order struct {
	ID              string            `json:"id"`
	ServiceID       string            `json:"serviceId"`
	CustomerID      string            `json:"customerId,omitempty"`
	Date            string            `json:"date"`
	StartTime       string            `json:"startTime"`
	Participants    int               `json:"participants"`
	Customer        Customer          `json:"customer"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
	Pricing         pricing.Breakdown `json:"pricing"`
	Status          string            `json:"status"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	PaidAt          *time.Time        `json:"paidAt,omitempty"`
}

// Envelope is the response shape of every marketplace endpoint.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. Empty fields are
// left unchanged.
type UpdateUserRequest struct {
	ID          string   `json:"-"`
	Name        string   `json:"name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Location    string   `json:"location,omitempty"`
	IDNumber    string   `json:"idNumber,omitempty"`
	IDFront     string   `json:"idFront,omitempty"`
	IDBack      string   `json:"idBack,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Experience  int      `json:"experienceYears,omitempty"`
}
