package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/injapanfood/pos-api/pkg/printer"
)

const receiptNoLength = 6

// ReceiptService materializes receipts for stored transactions and renders them.
type ReceiptService struct {
	txRepo repository.TransactionRepository
	store  entity.StoreInfo
	loc    *time.Location
}

// NewReceiptService creates a new receipt service.
// Receipt dates are printed in loc.
func NewReceiptService(txRepo repository.TransactionRepository, store entity.StoreInfo, loc *time.Location) *ReceiptService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptService{
		txRepo: txRepo,
		store:  store,
		loc:    loc,
	}
}

// StoreInfo returns the header printed on every receipt.
func (s *ReceiptService) StoreInfo() entity.StoreInfo {
	return s.store
}

// GetReceipt reads a transaction back and builds its receipt.
func (s *ReceiptService) GetReceipt(ctx context.Context, transactionID string) (*entity.Receipt, error) {
	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.NewReadError("Failed to load transaction", err)
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return BuildReceipt(tx, s.store), nil
}

// Layout returns the monospace layout of r.
func (s *ReceiptService) Layout(r *entity.Receipt) *printer.Document {
	return FormatReceipt(r, s.loc)
}

// WriteHTML writes the print view of r.
func (s *ReceiptService) WriteHTML(w io.Writer, r *entity.Receipt) error {
	return printer.RenderHTML(w, s.Layout(r), "Receipt "+r.ReceiptNo)
}

// WritePDF writes r as a single page PDF.
func (s *ReceiptService) WritePDF(w io.Writer, r *entity.Receipt) error {
	return printer.RenderPDF(w, s.Layout(r))
}

// WritePNG writes r as a thermal-printer style image.
func (s *ReceiptService) WritePNG(w io.Writer, r *entity.Receipt) error {
	return printer.RenderPNG(w, s.Layout(r))
}

// BuildReceipt projects a transaction onto a receipt. It performs no I/O.
func BuildReceipt(tx *entity.Transaction, store entity.StoreInfo) *entity.Receipt {
	items := make([]entity.ReceiptItem, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}

	return &entity.Receipt{
		Header:        store,
		ReceiptNo:     ReceiptNumber(tx.ID),
		TransactionID: tx.ID,
		Date:          tx.CreatedAt,
		Cashier:       tx.CashierName,
		PaymentMethod: tx.PaymentMethod,
		Items:         items,
		Total:         tx.TotalAmount,
	}
}

// ReceiptNumber is the display number printed for a transaction:
// the last six characters of its id, upper-cased.
func ReceiptNumber(transactionID string) string {
	if len(transactionID) > receiptNoLength {
		transactionID = transactionID[len(transactionID)-receiptNoLength:]
	}
	return strings.ToUpper(transactionID)
}

// FormatReceipt lays out a receipt for an 80mm roll.
func FormatReceipt(r *entity.Receipt, loc *time.Location) *printer.Document {
	if loc == nil {
		loc = time.UTC
	}
	doc := printer.NewDocument(printer.DefaultWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(r.Header.StoreName).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt No:", r.ReceiptNo).
		KeyValue("Date:", r.Date.In(loc).Format("2006/01/02 15:04"))

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, printer.Yen(item.Subtotal))
		if item.Quantity > 1 {
			doc.Text(fmt.Sprintf("  @ %s each", printer.Yen(item.UnitPrice)))
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", printer.Yen(r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your purchase!").
		SetAlign(printer.AlignLeft)

	return doc
}
