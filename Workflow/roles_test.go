package Workflow

import (
	"reflect"
	"testing"

	"AgencyHub/Models"
)

func TestRolesFor(t *testing.T) {
	task := &Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "bruno",
		ConsultedUsers:  []string{"elisa", "bruno"},
		InformedUsers:   []string{"carla"},
	}

	tests := []struct {
		userID string
		want   RoleSet
	}{
		{"ana", RoleResponsible},
		{"bruno", RoleAccountable | RoleConsulted},
		{"elisa", RoleConsulted},
		{"carla", RoleInformed},
		{"nadie", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := RolesFor(tt.userID, task); got != tt.want {
			t.Errorf("RolesFor(%q) = %b, want %b", tt.userID, got, tt.want)
		}
	}

	if got := RolesFor("ana", nil); got != 0 {
		t.Errorf("RolesFor on nil task = %b, want 0", got)
	}
}

func TestRolesForAllFour(t *testing.T) {
	task := &Models.TaskItem{
		ResponsibleUser: "ana",
		AccountableUser: "ana",
		ConsultedUsers:  []string{"ana"},
		InformedUsers:   []string{"ana"},
	}
	rs := RolesFor("ana", task)
	for _, role := range []RoleSet{RoleResponsible, RoleAccountable, RoleConsulted, RoleInformed} {
		if !rs.Has(role) {
			t.Errorf("role %b missing from %b", role, rs)
		}
	}
	want := []string{"responsible", "accountable", "consulted", "informed"}
	if got := rs.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPrimaryAction(t *testing.T) {
	tests := []struct {
		name   string
		rs     RoleSet
		status Models.TaskStatus
		want   Action
	}{
		{"responsible pending", RoleResponsible, Models.StatusPending, ActionComplete},
		{"responsible correction", RoleResponsible, Models.StatusCorrectionNeeded, ActionComplete},
		{"responsible in review waits", RoleResponsible, Models.StatusInReview, ActionView},
		{"responsible completed", RoleResponsible, Models.StatusCompleted, ActionView},
		{"accountable in review", RoleAccountable, Models.StatusInReview, ActionReview},
		{"accountable pending waits", RoleAccountable, Models.StatusPending, ActionView},
		{"consulted any status", RoleConsulted, Models.StatusCompleted, ActionConsult},
		{"informed only", RoleInformed, Models.StatusPending, ActionView},
		{"responsible beats consulted", RoleResponsible | RoleConsulted, Models.StatusPending, ActionComplete},
		{"accountable beats consulted", RoleAccountable | RoleConsulted, Models.StatusInReview, ActionReview},
		{"consulted wins when responsible idle", RoleResponsible | RoleConsulted, Models.StatusInReview, ActionConsult},
		{"no roles", 0, Models.StatusPending, ActionView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryAction(tt.rs, tt.status); got != tt.want {
				t.Errorf("PrimaryAction(%b, %s) = %s, want %s", tt.rs, tt.status, got, tt.want)
			}
		})
	}
}
