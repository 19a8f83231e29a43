// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// ReceiptLine is one printed line of the receipt
type ReceiptLine struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

// ReceiptData is the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	Date          string
	ClientName    string
	Lines         []ReceiptLine
	Total         string
	Company       CompanyInfo
}

// CompanyInfo is the business identity block on the receipt
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// GenerateReceipt renders a PDF receipt for a committed sale. Line
// values come from the sale's live subtotals.
func (s *Service) GenerateReceipt(sl *sale.Sale) (*bytes.Buffer, error) {
	lines := make([]ReceiptLine, 0, len(sl.Details))
	total := decimal.Zero
	for i := range sl.Details {
		sub := sl.Details[i].Subtotal()
		total = total.Add(sub)
		lines = append(lines, ReceiptLine{
			Name:     sl.Details[i].Product.Name,
			Quantity: sl.Details[i].Quantity,
			Price:    sl.Details[i].Product.Price.StringFixed(2),
			Subtotal: sub.StringFixed(2),
		})
	}

	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("SALE-%05d", sl.ID),
		Date:          sl.CreatedAt.Format("January 2, 2006 15:04"),
		ClientName:    sl.Client.Name,
		Lines:         lines,
		Total:         total.StringFixed(2),
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the receipt template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1e293b; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .meta { color: #64748b; font-size: 12px; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: left; border-bottom: 2px solid #1e293b; padding: 6px 4px; }
  td { border-bottom: 1px solid #e2e8f0; padding: 6px 4px; }
  .num { text-align: right; }
  .total td { border-bottom: none; font-weight: bold; border-top: 2px solid #1e293b; }
  .company { margin-top: 32px; color: #64748b; font-size: 11px; }
</style>
</head>
<body>
  <h1>Receipt {{.ReceiptNumber}}</h1>
  <div class="meta">{{.Date}} — {{.ClientName}}</div>

  <table>
    <tr><th>Product</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Subtotal</th></tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">${{.Price}}</td>
      <td class="num">${{.Subtotal}}</td>
    </tr>
    {{end}}
    <tr class="total"><td colspan="3">Total</td><td class="num">${{.Total}}</td></tr>
  </table>

  <div class="company">
    {{.Company.Name}}{{if .Company.Address}} — {{.Company.Address}}{{end}}<br>
    {{if .Company.Phone}}{{.Company.Phone}}{{end}}{{if .Company.Email}} — {{.Company.Email}}{{end}}
  </div>
</body>
</html>`
