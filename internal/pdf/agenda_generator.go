package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

// Generator renders a task agenda for a date window as a PDF file.
type Generator interface {
	GenerateAgenda(data AgendaData) (string, error)
}

type AgendaData struct {
	From     time.Time
	To       time.Time
	Tasks    []models.Task
	Events   []models.Event
	Filename string // basename only; generated when empty
}

// AgendaGenerator writes files under RootDir using an optional UTF-8 TTF.
type AgendaGenerator struct {
	RootDir  string
	FontPath string
	fontName string
}

func NewAgendaGenerator(rootDir, fontPath string) *AgendaGenerator {
	return &AgendaGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *AgendaGenerator) GenerateAgenda(data AgendaData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("agenda_%s.pdf", data.From.Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Agenda", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	g.addUTF8Font(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "Agenda", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s - %s", data.From.Format("02.01.2006"), data.To.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	if len(data.Events) > 0 {
		g.sectionTitle(pdf, "Events")
		for _, e := range data.Events {
			g.kvLine(pdf, e.StartAt.Format("02.01 15:04"), e.Title)
			if e.Location != "" {
				pdf.SetFont(g.fontName, "", 10)
				pdf.CellFormat(45, 5, "", "", 0, "L", false, 0, "")
				pdf.CellFormat(0, 5, e.Location, "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(2)
		g.hr(pdf)
	}

	if len(data.Tasks) > 0 {
		g.sectionTitle(pdf, "Tasks")
		for _, t := range data.Tasks {
			span := fmt.Sprintf("%s - %s", t.StartDate.Format("02.01"), t.EndDate.Format("02.01"))
			g.kvLine(pdf, span, fmt.Sprintf("%s (%s)", t.Activity, t.Status))
			if n := len(t.Assignments); n > 0 {
				pdf.SetFont(g.fontName, "", 10)
				pdf.CellFormat(45, 5, "", "", 0, "L", false, 0, "")
				pdf.CellFormat(0, 5, fmt.Sprintf("%d assignee(s)", n), "", 1, "L", false, 0, "")
			}
		}
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *AgendaGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *AgendaGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		g.fontName = "Helvetica"
		return
	}
	if _, err := os.Stat(g.FontPath); err != nil {
		g.fontName = "Helvetica"
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *AgendaGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *AgendaGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *AgendaGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
