package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/nurpe/contracts-service/internal/model"
)

type ExcelGenerator interface {
	Generate(invoices []model.Invoice) ([]byte, error)
}

type PDFGenerator interface {
	Generate(invoice model.Invoice) ([]byte, error)
}

type InvoiceService struct {
	contracts ContractRepository
	points    PointRepository
	excel     ExcelGenerator
	pdf       PDFGenerator
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewInvoiceService(contracts ContractRepository, points PointRepository, excel ExcelGenerator, pdf PDFGenerator) *InvoiceService {
	return &InvoiceService{
		contracts: contracts,
		points:    points,
		excel:     excel,
		pdf:       pdf,
	}
}

// Summaries returns every contract with its point count and value total.
// A single unparsable value fails the whole listing.
func (s *InvoiceService) Summaries(ctx context.Context) ([]model.ContractSummary, error) {
	invoices, err := s.invoices(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.ContractSummary, 0, len(invoices))
	for _, invoice := range invoices {
		summaries = append(summaries, invoice.ContractSummary)
	}
	return summaries, nil
}

func (s *InvoiceService) Invoice(ctx context.Context, contractID uint) (*model.Invoice, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, storageError(err)
	}
	points, err := s.points.ListByContract(ctx, contractID)
	if err != nil {
		return nil, storageError(err)
	}
	invoice, err := buildInvoice(*contract, points)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *InvoiceService) ExportWorkbook(ctx context.Context) (*ExportResult, error) {
	invoices, err := s.invoices(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(invoices)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "contracts-invoice.xlsx", Content: content}, nil
}

func (s *InvoiceService) ExportPDF(ctx context.Context, contractID uint) (*ExportResult, error) {
	invoice, err := s.Invoice(ctx, contractID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*invoice)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: invoiceFileName(invoice.Contract), Content: content}, nil
}

func (s *InvoiceService) invoices(ctx context.Context) ([]model.Invoice, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	points, err := s.points.ListAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	byContract := make(map[int64][]model.Point, len(contracts))
	for _, point := range points {
		byContract[point.ContractID] = append(byContract[point.ContractID], point)
	}

	invoices := make([]model.Invoice, 0, len(contracts))
	for _, contract := range contracts {
		invoice, err := buildInvoice(contract, byContract[int64(contract.ID)])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func buildInvoice(contract model.Contract, points []model.Point) (model.Invoice, error) {
	if points == nil {
		points = []model.Point{}
	}
	total := 0.0
	for _, point := range points {
		value, err := ParseValue(point.Value)
		if err != nil {
			return model.Invoice{}, fmt.Errorf("contract %d point %d: %w", contract.ID, point.ID, err)
		}
		total += value
	}
	if math.IsInf(total, 0) {
		return model.Invoice{}, fmt.Errorf("contract %d: %w: total overflows", contract.ID, ErrInvalidValue)
	}
	return model.Invoice{
		ContractSummary: model.ContractSummary{
			Contract:    contract,
			TotalPoints: len(points),
			TotalValue:  total,
		},
		Points: points,
	}, nil
}

func invoiceFileName(contract model.Contract) string {
	name := sanitizeFileName(contract.ContractName)
	if name == "" {
		return fmt.Sprintf("invoice-%d.pdf", contract.ID)
	}
	return fmt.Sprintf("invoice-%d-%s.pdf", contract.ID, name)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
