package model

type ContractSummary struct {
	Contract    Contract
	TotalPoints int
	TotalValue  float64
}

type Invoice struct {
	ContractSummary
	Points []Point
}
