package repositories

import (
	"fmt"
	"time"

	"tienda/internal/models"
)

// productRecord is the relational row behind a models.Product.
type productRecord struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Stock       int     `gorm:"not null;default:0"`
	Category    string  `gorm:"not null;index"`
	Description string  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRecord) TableName() string { return "products" }

func newProductRecord(p *models.Product) productRecord {
	return productRecord{
		ID:          p.ID(),
		Name:        p.Name(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		Category:    p.Category(),
		Description: p.Description(),
	}
}

func (r productRecord) toProduct() (*models.Product, error) {
	p, err := models.NewProductWithID(r.ID, r.Name, r.Price, r.Stock, r.Category, r.Description)
	if err != nil {
		// Only ErrInvalidRecord is wrapped: a bad row is a storage fault.
		return nil, fmt.Errorf("%w: id %d: %v", ErrInvalidRecord, r.ID, err)
	}
	return p, nil
}

type saleRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Total     float64
	Staff     string
	Items     []saleItemRecord `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (saleRecord) TableName() string { return "sales" }

type saleItemRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	SaleID    string `gorm:"type:varchar(36);index"`
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice float64
}

func (saleItemRecord) TableName() string { return "sale_items" }

func newSaleRecord(s *models.Sale) saleRecord {
	rec := saleRecord{
		ID:        s.ID,
		Total:     s.Total,
		Staff:     s.Staff,
		CreatedAt: s.CreatedAt,
	}
	for _, item := range s.Items {
		rec.Items = append(rec.Items, saleItemRecord{
			SaleID:    s.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return rec
}

func (r saleRecord) toSale() models.Sale {
	sale := models.Sale{
		ID:        r.ID,
		Total:     r.Total,
		Staff:     r.Staff,
		CreatedAt: r.CreatedAt,
		Items:     make([]models.SaleItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return sale
}

type staffRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"uniqueIndex;type:varchar(100)"`
	Email     string `gorm:"uniqueIndex;type:varchar(255)"`
	Password  string `gorm:"type:varchar(255)"`
	Role      string `gorm:"type:varchar(20)"`
	CreatedAt time.Time
}

func (staffRecord) TableName() string { return "staff" }

func (r staffRecord) toStaff() *models.Staff {
	return &models.Staff{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

// Models lists the GORM models to migrate.
func Models() []any {
	return []any{&productRecord{}, &saleRecord{}, &saleItemRecord{}, &staffRecord{}}
}
