package service

import (
	"bytes"
	"fmt"
	"menteazul/internal/model"
	"menteazul/internal/qchat"

	"github.com/jung-kurt/gofpdf"
)

var riskLabels = map[qchat.RiskLevel]string{
	qchat.RiskLow:      "Bajo",
	qchat.RiskModerate: "Medio",
	qchat.RiskHigh:     "Alto",
}

// fill colours per risk level
var riskColors = map[qchat.RiskLevel][3]int{
	qchat.RiskLow:      {212, 237, 218},
	qchat.RiskModerate: {255, 243, 205},
	qchat.RiskHigh:     {248, 215, 218},
}

const reportDisclaimer = "Este cuestionario es una herramienta de detección, no un diagnóstico definitivo. " +
	"Si tiene preocupaciones sobre el desarrollo de su hijo/a, consulte con un profesional " +
	"de la salud especializado en desarrollo infantil."

// RenderResultPDF lays out a printable A4 report of a stored result
func RenderResultPDF(result *model.Result, v *qchat.Variant, g *qchat.AgeGroup) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Resultados Q-CHAT", true)
	pdf.SetCreator("MenteAzul", true)
	pdf.SetCreationDate(result.CompletedAt)
	pdf.SetMargins(15, 15, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Resultados de la Evaluación Q-CHAT"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(v.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Niño/a", result.Child.Name},
		{"Edad", fmt.Sprintf("%d meses", result.Child.AgeMonths)},
		{"Cuestionario", fmt.Sprintf("%s (%s)", g.Name, g.AgeRange)},
		{"Fecha", result.CompletedAt.Format("02/01/2006 15:04")},
		{"Preguntas respondidas", fmt.Sprintf("%d de %d", result.AnsweredCount, result.QuestionCount)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(55, 7, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	c := riskColors[result.RiskLevel]
	pdf.SetFillColor(c[0], c[1], c[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("Nivel de Riesgo: "+riskLabels[result.RiskLevel]), "", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, tr(fmt.Sprintf("Puntuación total: %d / %d", result.TotalScore, result.MaxScore)), "", 1, "C", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Puntuación por área"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, cat := range g.CategoriesPresent() {
		pdf.CellFormat(80, 7, tr(v.CategoryName(cat)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", result.CategoryBreakdown[cat]), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Recomendaciones"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, rec := range result.Recommendations {
		pdf.MultiCell(0, 6, tr("- "+rec), "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Importante:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(reportDisclaimer), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
