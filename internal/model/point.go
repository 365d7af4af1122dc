package model

// Point is a named value attached to a contract. Value is kept as text and
// only read as a number when a contract's totals are computed. ContractID is
// not checked against existing contracts.
type Point struct {
	ID         uint   `gorm:"primaryKey"`
	ContractID int64  `gorm:"column:contract_id;not null;index"`
	Point      string `gorm:"column:point;size:100;not null"`
	Value      string `gorm:"column:value;size:100;not null"`
}

func (Point) TableName() string { return "points" }
