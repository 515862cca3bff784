package Slack

import (
	"strings"
	"testing"
	"time"

	"AgencyHub/Models"
)

func TestBuildDigestMessageEmpty(t *testing.T) {
	today := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	message := BuildDigestMessage(today, nil, nil)

	for _, want := range []string{
		"*Resumen diario — 2025-09-01*",
		"*Pendientes de revisión (0)*",
		"_Sin tareas en revisión_",
		"*Tareas vencidas (0)*",
		"_Sin tareas vencidas_",
		"sin pendientes",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("digest missing %q:\n%s", want, message)
		}
	}
}

func TestBuildDigestMessageCounts(t *testing.T) {
	today := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC)

	inReview := []Models.TaskItem{
		{Department: Models.DepartmentMarketing, Title: "Definir audiencias"},
		{Department: Models.DepartmentCommunity, Title: "Grilla de septiembre"},
	}
	overdue := []Models.TaskItem{
		{Department: Models.DepartmentMarketing, Title: "Informe mensual", DueDate: &due},
	}

	message := BuildDigestMessage(today, inReview, overdue)

	for _, want := range []string{
		"*Pendientes de revisión (2)*",
		"• [marketing] Definir audiencias",
		"• [community] Grilla de septiembre",
		"*Tareas vencidas (1)*",
		"• [marketing] Informe mensual (vencía 2025-08-28)",
		"marketing 2 · community 1",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("digest missing %q:\n%s", want, message)
		}
	}
	if strings.Contains(message, "branding") {
		t.Error("digest lists a department with no pending work")
	}
}
