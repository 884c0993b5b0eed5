package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator: интерфейс (удобно мокать в тестах)
type Generator interface {
	MemberCard(data CardData) ([]byte, error)
}

// CardGenerator renders membership cards in memory.
type CardGenerator struct {
	FontPath string // TTF с кириллицей; если пусто, встроенный Helvetica
	fontName string
}

type CardData struct {
	MembershipID string
	FullName     string
	Organization string
	Designation  string
	Status       string
	IssuedAt     time.Time
}

func NewCardGenerator(fontPath string) *CardGenerator {
	g := &CardGenerator{FontPath: fontPath, fontName: "DejaVu"}
	if fontPath == "" {
		g.fontName = "Helvetica"
	}
	return g
}

// card size, ID-1 landscape
const (
	cardW = 85.6
	cardH = 54.0
)

func (g *CardGenerator) MemberCard(data CardData) ([]byte, error) {
	if data.MembershipID == "" {
		return nil, fmt.Errorf("member card: empty membership id")
	}
	if data.IssuedAt.IsZero() {
		data.IssuedAt = time.Now()
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cardW, Ht: cardH},
	})
	pdf.SetTitle("Membership card "+data.MembershipID, true)
	pdf.SetAuthor("memberhub", false)
	pdf.SetMargins(5, 5, 5)
	pdf.SetAutoPageBreak(false, 0)
	g.addFont(pdf)
	tr := g.translator(pdf)
	pdf.AddPage()

	// шапка
	pdf.SetFillColor(24, 64, 120)
	pdf.Rect(0, 0, cardW, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(g.fontName, "B", 10)
	pdf.SetXY(5, 3)
	pdf.CellFormat(cardW-10, 6, tr(data.Organization), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(15)
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, tr(data.FullName), "", 1, "L", false, 0, "")
	g.hr(pdf)

	g.kvLine(pdf, tr, "Member ID", data.MembershipID)
	if data.Designation != "" {
		g.kvLine(pdf, tr, "Designation", data.Designation)
	}
	g.kvLine(pdf, tr, "Status", data.Status)
	g.kvLine(pdf, tr, "Issued", data.IssuedAt.Format("02.01.2006"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("member card: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== helpers =====

func (g *CardGenerator) addFont(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	// AddUTF8Font принимает путь до TTF
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

// translator maps UTF-8 to cp1252 for the core font; a TTF needs no translation.
func (g *CardGenerator) translator(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *CardGenerator) kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	pdf.SetFont(g.fontName, "B", 7)
	pdf.CellFormat(22, 5, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 7)
	pdf.CellFormat(0, 5, tr(val), "", 1, "L", false, 0, "")
}

func (g *CardGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1
	pdf.SetLineWidth(0.2)
	pdf.Line(5, y, cardW-5, y)
	pdf.SetY(y + 1.5)
}
