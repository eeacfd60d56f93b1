package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"societyportal/internal/models"
)

// Generator renders the member roster; interface kept small so handlers can
// be tested against a fake.
type Generator interface {
	GenerateRoster(members []*models.User) (string, error)
}

type RosterGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewRosterGenerator(rootDir string) *RosterGenerator {
	return &RosterGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateRoster writes the roster PDF under RootDir and returns its path.
func (g *RosterGenerator) GenerateRoster(members []*models.User) (string, error) {
	absPath, err := g.ensureTarget(fmt.Sprintf("members_%s.pdf", time.Now().Format("20060102")))
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Society Member Roster", false)
	pdf.SetAuthor("Societies Portal", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Society Member Roster", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated %s - %d members",
		time.Now().Format("2 Jan 2006 15:04"), len(members)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 8, "ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Username", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Email", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Role", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range members {
		email := "-"
		if m.Email != nil {
			email = *m.Email
		}
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", m.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, m.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, m.Username, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, m.Role, "1", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("roster pdf write: %w", err)
	}
	return absPath, nil
}

func (g *RosterGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	return filepath.Join(dir, filename), nil
}
