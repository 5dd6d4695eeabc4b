package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jung-kurt/gofpdf"
)

type Service struct {
	DB         *pgxpool.Pool
	ReportsDir string
}

func NewService(db *pgxpool.Pool, reportsDir string) *Service {
	return &Service{DB: db, ReportsDir: reportsDir}
}

func (s *Service) CycleSummary(ctx context.Context, tenantID, cycleID string) (CycleSummary, error) {
	var cycleName string
	if err := s.DB.QueryRow(ctx, "SELECT name FROM review_cycles WHERE tenant_id = $1 AND id = $2", tenantID, cycleID).Scan(&cycleName); err != nil {
		return CycleSummary{}, err
	}

	statusCounts := map[string]int{}
	rows, err := s.DB.Query(ctx, `
    SELECT status, COUNT(1)
    FROM review_assignments
    WHERE tenant_id = $1 AND cycle_id = $2
    GROUP BY status
  `, tenantID, cycleID)
	if err != nil {
		return CycleSummary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return CycleSummary{}, err
		}
		statusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return CycleSummary{}, err
	}

	ratingRows, err := s.DB.Query(ctx, `
    SELECT overall_rating
    FROM review_assignments
    WHERE tenant_id = $1 AND cycle_id = $2 AND overall_rating IS NOT NULL
  `, tenantID, cycleID)
	if err != nil {
		return CycleSummary{}, err
	}
	defer ratingRows.Close()

	var overallRatings []float64
	for ratingRows.Next() {
		var rating float64
		if err := ratingRows.Scan(&rating); err != nil {
			return CycleSummary{}, err
		}
		overallRatings = append(overallRatings, rating)
	}
	if err := ratingRows.Err(); err != nil {
		return CycleSummary{}, err
	}

	return buildCycleSummary(cycleID, cycleName, statusCounts, overallRatings), nil
}

// GenerateCycleSummaryPDF renders the summary to a PDF on disk and returns
// the file path.
func (s *Service) GenerateCycleSummaryPDF(ctx context.Context, tenantID, cycleID string) (string, error) {
	summary, err := s.CycleSummary(ctx, tenantID, cycleID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.ReportsDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.ReportsDir, fmt.Sprintf("cycle-%s-%d.pdf", cycleID, time.Now().Unix()))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Cycle Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s", summary.CycleName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Assignments: %d", summary.AssignmentsTotal))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Completed: %d", summary.AssignmentsCompleted))
	pdf.Ln(7)
	if summary.CompletionRate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Completion rate: %.0f%%", *summary.CompletionRate*100))
	} else {
		pdf.Cell(0, 8, "Completion rate: n/a")
	}
	pdf.Ln(7)
	if summary.AverageOverallRating != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Average overall rating: %.2f", *summary.AverageOverallRating))
	} else {
		pdf.Cell(0, 8, "Average overall rating: n/a")
	}
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Assignments by status")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for status, count := range summary.AssignmentsByStatus {
		pdf.Cell(0, 7, fmt.Sprintf("  %s: %d", status, count))
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
