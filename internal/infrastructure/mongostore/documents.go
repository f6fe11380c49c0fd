package mongostore

import (
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type transactionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Items         []transactionLine  `bson:"items"`
	TotalAmount   int64              `bson:"total_amount"`
	CashierName   string             `bson:"cashier_name"`
	CashierID     string             `bson:"cashier_id"`
	Status        string             `bson:"status"`
	PaymentMethod string             `bson:"payment_method"`
	CreatedAt     time.Time          `bson:"created_at"`
}

type transactionLine struct {
	ProductID string `bson:"product_id"`
	Name      string `bson:"name"`
	UnitPrice int64  `bson:"unit_price"`
	Quantity  int    `bson:"quantity"`
}

func newTransactionDoc(tx *entity.Transaction) transactionDoc {
	doc := transactionDoc{
		Items:         make([]transactionLine, 0, len(tx.Items)),
		TotalAmount:   tx.TotalAmount,
		CashierName:   tx.CashierName,
		CashierID:     tx.CashierID,
		Status:        tx.Status.String(),
		PaymentMethod: tx.PaymentMethod,
		CreatedAt:     tx.CreatedAt.UTC(),
	}
	for _, item := range tx.Items {
		doc.Items = append(doc.Items, transactionLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return doc
}

func (d transactionDoc) toEntity() entity.Transaction {
	tx := entity.Transaction{
		ID:            d.ID.Hex(),
		Items:         make([]entity.TransactionItem, 0, len(d.Items)),
		TotalAmount:   d.TotalAmount,
		CashierName:   d.CashierName,
		CashierID:     d.CashierID,
		Status:        enum.TransactionStatus(d.Status),
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     d.CreatedAt,
	}
	for i, line := range d.Items {
		tx.Items = append(tx.Items, entity.TransactionItem{
			TransactionID: tx.ID,
			Position:      i,
			ProductID:     line.ProductID,
			Name:          line.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
		})
	}
	return tx
}

type orderDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName string             `bson:"customer_name"`
	TotalPrice   int64              `bson:"total_price"`
	Status       string             `bson:"status"`
	ItemCount    int                `bson:"item_count"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d orderDoc) toEntity() entity.Order {
	return entity.Order{
		ID:           d.ID.Hex(),
		CustomerName: d.CustomerName,
		TotalPrice:   d.TotalPrice,
		Status:       d.Status,
		ItemCount:    d.ItemCount,
		CreatedAt:    d.CreatedAt,
	}
}

type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Price     int64              `bson:"price"`
	ImageURL  string             `bson:"image_url,omitempty"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newProductDoc(p *entity.Product, now time.Time) productDoc {
	return productDoc{
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Active:    p.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d productDoc) toEntity() entity.Product {
	return entity.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Category:  d.Category,
		Price:     d.Price,
		ImageURL:  d.ImageURL,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type monthlyReportDoc struct {
	Year       int                       `bson:"year"`
	Months     []entity.MonthlyAggregate `bson:"months"`
	ComputedAt time.Time                 `bson:"computed_at"`
}
