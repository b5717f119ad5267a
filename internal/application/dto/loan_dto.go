package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest entrada para registrar un préstamo sobre una venta existente.
type CreateLoanRequest struct {
	SaleID     string          `json:"sale_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// PayLoanRequest entrada para abonar a un préstamo.
type PayLoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// LoanResponse salida de un préstamo.
type LoanResponse struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentResponse salida de un abono. Balance es el saldo tras aplicarlo.
type PaymentResponse struct {
	ID      string          `json:"id"`
	LoanID  string          `json:"loan_id"`
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// LoanDetailResponse préstamo con su historial de abonos.
type LoanDetailResponse struct {
	Loan     LoanResponse      `json:"loan"`
	Payments []PaymentResponse `json:"payments"`
}
