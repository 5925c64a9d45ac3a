// Package documents renders the printable form of a medical request.
package documents

import (
	"context"
	"fmt"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"
)

// TextRenderer produces a UTF-8 plain text document carrying the verification link and
// access code, which the QR code on the printed form encodes.
type TextRenderer struct {
	verifyBaseURL string
}

var _ interfaces.IDocumentRenderer = (*TextRenderer)(nil)

func NewTextRenderer(verifyBaseURL string) *TextRenderer {
	return &TextRenderer{verifyBaseURL: strings.TrimRight(strings.TrimSpace(verifyBaseURL), "/")}
}

var titles = map[entities.RequestType]string{
	entities.RequestTypePrescription: "RECEITA MEDICA",
	entities.RequestTypeExam:         "PEDIDO DE EXAME",
	entities.RequestTypeConsultation: "CONSULTA",
}

func (t *TextRenderer) Render(ctx context.Context, r entities.MedicalRequest) (interfaces.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.RenderedDocument{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", titles[r.Type], r.Subtype)
	fmt.Fprintf(&b, "Paciente: %s\n", r.PatientName)
	if r.DoctorName != nil {
		fmt.Fprintf(&b, "Medico: %s", *r.DoctorName)
		if r.DoctorCRM != nil {
			fmt.Fprintf(&b, " - CRM %s", *r.DoctorCRM)
		}
		b.WriteString("\n")
	}
	if r.SignedAt != nil {
		fmt.Fprintf(&b, "Data: %s\n", r.SignedAt.Format("02/01/2006"))
	}

	writeList(&b, "Medicamentos", r.Medications)
	writeList(&b, "Exames", r.Exams)
	if r.Notes != "" {
		fmt.Fprintf(&b, "\nObservacoes:\n%s\n", r.Notes)
	}

	b.WriteString("\n")
	if t.verifyBaseURL != "" {
		fmt.Fprintf(&b, "Verificacao: %s/%s\n", t.verifyBaseURL, r.ID)
	} else {
		fmt.Fprintf(&b, "Documento: %s\n", r.ID)
	}
	if r.AccessCode != nil {
		fmt.Fprintf(&b, "Codigo de acesso: %s\n", *r.AccessCode)
	}

	return interfaces.RenderedDocument{
		Content:     []byte(b.String()),
		ContentType: "text/plain; charset=utf-8",
		Extension:   ".txt",
	}, nil
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for i, it := range items {
		fmt.Fprintf(b, "  %d. %s\n", i+1, it)
	}
}
