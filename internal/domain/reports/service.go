package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"crewhub/internal/domain/employee"
	"crewhub/internal/domain/points"
)

type Service struct {
	employees *employee.Service
	points    *points.Service
}

func NewService(employees *employee.Service, points *points.Service) *Service {
	return &Service{employees: employees, points: points}
}

// CostSummaryPDF renders the workforce cost summary plus a per-employee
// breakdown and streams the document to w.
func (s *Service) CostSummaryPDF(ctx context.Context, w io.Writer) error {
	employees, summary, err := s.employees.CostSummary(ctx)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Workforce Cost Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", summary.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total monthly cost: %.2f", summary.TotalMonthlyCost))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average hourly cost: %.2f", summary.AvgHourlyCost))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total annual cost: %.2f", summary.TotalAnnualCost))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Hourly cost", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Monthly hours", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 11)
	for _, emp := range employees {
		pdf.CellFormat(70, 8, emp.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", emp.EffectiveHourlyCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f", emp.MonthlyHours), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// LeaderboardRows returns the leaderboard flattened for CSV export, one
// row per employee in descending point order.
func (s *Service) LeaderboardRows(ctx context.Context) ([][]string, error) {
	board, err := s.points.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(board)+1)
	rows = append(rows, []string{"rank", "employee_id", "name", "total_points", "rollover_points"})
	for i, emp := range board {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			emp.ID,
			emp.Name,
			fmt.Sprintf("%d", emp.TotalPoints),
			fmt.Sprintf("%d", emp.RolloverPoints),
		})
	}
	return rows, nil
}
