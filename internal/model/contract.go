package model

type Contract struct {
	ID           uint   `gorm:"primaryKey"`
	ContractName string `gorm:"column:contract_name;size:100;not null"`
	StartDate    string `gorm:"column:start_date;size:20;not null"`
	EndDate      string `gorm:"column:end_date;size:20;not null"`
}

func (Contract) TableName() string { return "contracts" }
