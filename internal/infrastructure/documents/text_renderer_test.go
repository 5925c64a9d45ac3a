package documents

import (
	"context"
	"strings"
	"testing"

	"medrequest_xpto/internal/domain/entities"
)

func TestTextRenderer_Render(t *testing.T) {
	r := entities.MedicalRequest{
		ID:          "req-1",
		Type:        entities.RequestTypePrescription,
		Subtype:     "simples",
		PatientName: "Maria da Silva",
		DoctorName:  entities.StringPtr("Dr. Joao"),
		DoctorCRM:   entities.StringPtr("12345-SP"),
		Medications: []string{"Amoxicilina 500mg", "Dipirona 1g"},
		AccessCode:  entities.StringPtr("0848"),
	}

	doc, err := NewTextRenderer("https://verify.example/v/").Render(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(doc.Content)
	for _, want := range []string{"RECEITA MEDICA (simples)", "Maria da Silva", "CRM 12345-SP", "2. Dipirona 1g", "https://verify.example/v/req-1", "Codigo de acesso: 0848"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected document to contain %q, got:\n%s", want, text)
		}
	}
	if doc.Extension != ".txt" {
		t.Fatalf("expected .txt, got %s", doc.Extension)
	}
}
