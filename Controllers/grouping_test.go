package Controllers

import (
	"testing"
	"time"

	"AgencyHub/Models"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func TestGroupEventsByDay(t *testing.T) {
	events := []Models.CalendarEvent{
		{Concept: "Reunión de kickoff", Day: day("2025-09-01"), StartTime: "09:00", EndTime: "10:00"},
		{Concept: "Revisión de piezas", Day: day("2025-09-01"), StartTime: "15:00", EndTime: "16:00"},
		{Concept: "Grabación", Day: day("2025-09-03"), StartTime: "11:00", EndTime: "13:00"},
	}

	grouped := GroupEventsByDay(events)
	if len(grouped) != 2 {
		t.Fatalf("days = %d, want 2", len(grouped))
	}
	if len(grouped["2025-09-01"]) != 2 {
		t.Errorf("2025-09-01 events = %d, want 2", len(grouped["2025-09-01"]))
	}
	if len(grouped["2025-09-03"]) != 1 {
		t.Errorf("2025-09-03 events = %d, want 1", len(grouped["2025-09-03"]))
	}
	if _, ok := grouped["2025-09-02"]; ok {
		t.Error("empty day present in grouping")
	}
}

func TestGroupContentByWeek(t *testing.T) {
	content := []Models.CommunityContent{
		{Week: "Semana 1", Platform: "Instagram", Date: day("2025-09-01")},
		{Week: "Semana 2", Platform: "TikTok", Date: day("2025-09-08")},
		{Week: "Semana 1", Platform: "TikTok", Date: day("2025-09-03")},
	}

	grouped := GroupContentByWeek(content)
	if len(grouped) != 2 {
		t.Fatalf("weeks = %d, want 2", len(grouped))
	}
	if len(grouped["Semana 1"]) != 2 || len(grouped["Semana 2"]) != 1 {
		t.Errorf("grouping wrong: %+v", grouped)
	}
}

func TestBuildWeekBlocksOrdersByEarliestDate(t *testing.T) {
	content := []Models.CommunityContent{
		{Week: "Semana 2", Date: day("2025-09-08")},
		{Week: "Semana 1", Date: day("2025-09-01")},
		{Week: "Semana 1", Date: day("2025-09-03")},
		{Week: "Semana 3", Date: day("2025-09-15")},
	}

	blocks := BuildWeekBlocks(content)
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	wantOrder := []string{"Semana 1", "Semana 2", "Semana 3"}
	for i, want := range wantOrder {
		if blocks[i].Week != want {
			t.Errorf("blocks[%d].Week = %s, want %s", i, blocks[i].Week, want)
		}
	}
	if len(blocks[0].Items) != 2 {
		t.Errorf("Semana 1 items = %d, want 2", len(blocks[0].Items))
	}
}

func TestBuildWeekBlocksEmpty(t *testing.T) {
	if blocks := BuildWeekBlocks(nil); len(blocks) != 0 {
		t.Errorf("blocks for no content = %v", blocks)
	}
}
