package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

// ReceiptService renders rent receipts as PDFs for paid months.
type ReceiptService struct {
	paymentRepo *repositories.PaymentRepository
	relRepo     *repositories.RelationshipRepository
	userRepo    *repositories.UserRepository
}

func NewReceiptService(
	paymentRepo *repositories.PaymentRepository,
	relRepo *repositories.RelationshipRepository,
	userRepo *repositories.UserRepository,
) *ReceiptService {
	return &ReceiptService{paymentRepo: paymentRepo, relRepo: relRepo, userRepo: userRepo}
}

// Generate renders a receipt for the paid billing month. Either party of the
// relationship can download it.
func (s *ReceiptService) Generate(ctx context.Context, userID, relationshipID, billingMonth string) ([]byte, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}

	if billingMonth == "" {
		billingMonth = models.CurrentBillingMonth()
	} else if billingMonth, err = models.ParseBillingMonth(billingMonth); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetForMonth(ctx, rel.RenterID, rel.OwnerID, billingMonth)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.Status != models.PaymentStatusPaid {
		return nil, fmt.Errorf("no paid payment recorded for %s", billingMonth)
	}

	owner, err := s.userRepo.Get(ctx, rel.OwnerID)
	if err != nil {
		return nil, err
	}
	renter, err := s.userRepo.Get(ctx, rel.RenterID)
	if err != nil {
		return nil, err
	}

	return s.renderPDF(rel, payment, owner, renter)
}

func (s *ReceiptService) renderPDF(rel *models.Relationship, payment *models.PaymentRecord, owner, renter *models.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Rent Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Parties
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Owner: %s", owner.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Renter: %s", renter.Name), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Property: %s", rel.PropertyName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Billing Month: %s", payment.BillingMonth), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amount breakdown
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Amount", "1", 1, "L", true, 0, "")

	rent := payment.Amount - payment.ElectricBillAmount
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Monthly Rent", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Rs. %.2f", rent), "1", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Electricity Bill", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Rs. %.2f", payment.ElectricBillAmount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(95, 8, "Total Paid", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 8, fmt.Sprintf("Rs. %.2f", payment.Amount), "1", 1, "R", true, 0, "")
	pdf.Ln(5)

	// Payment metadata
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Payment Method: %s", payment.PaymentMethod), "", 1, "L", false, 0, "")
	if payment.TransactionID != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Transaction ID: %s", payment.TransactionID), "", 1, "L", false, 0, "")
	}
	if payment.RazorpayPaymentID != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Payment ID: %s", payment.RazorpayPaymentID), "", 1, "L", false, 0, "")
	}
	if payment.PaymentDate != nil {
		pdf.CellFormat(190, 6, fmt.Sprintf("Paid On: %s", payment.PaymentDate.Format("02-Jan-2006")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
