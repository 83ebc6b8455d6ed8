package models

// TransactionType is a spending category. Reference data seeded by migration.
type TransactionType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name     string `gorm:"not null" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

// Category codes seeded by the initial migration.
const (
	TypeGrocery       = "GROCERY"
	TypeHome          = "HOME"
	TypeHealthBeauty  = "HEALTH_BEAUTY"
	TypeCar           = "CAR"
	TypeFashion       = "FASHION"
	TypeEntertainment = "ENTERTAINMENT"
	TypeBills         = "BILLS"
	TypeFixed         = "FIXED"
	TypeUnplanned     = "UNPLANNED"
	TypeInvest        = "INVEST"
	TypeOther         = "OTHER"
)

// DefaultTransactionTypes returns the seed rows, in display order.
func DefaultTransactionTypes() []TransactionType {
	return []TransactionType{
		{ID: 1, Code: TypeGrocery, Name: "Groceries", Position: 1},
		{ID: 2, Code: TypeHome, Name: "Home", Position: 2},
		{ID: 3, Code: TypeHealthBeauty, Name: "Health & beauty", Position: 3},
		{ID: 4, Code: TypeCar, Name: "Car", Position: 4},
		{ID: 5, Code: TypeFashion, Name: "Fashion", Position: 5},
		{ID: 6, Code: TypeEntertainment, Name: "Entertainment", Position: 6},
		{ID: 7, Code: TypeBills, Name: "Bills", Position: 7},
		{ID: 8, Code: TypeFixed, Name: "Fixed costs", Position: 8},
		{ID: 9, Code: TypeUnplanned, Name: "Unplanned", Position: 9},
		{ID: 10, Code: TypeInvest, Name: "Investments", Position: 10},
		{ID: 11, Code: TypeOther, Name: "Other", Position: 11},
	}
}
