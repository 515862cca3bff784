package Workflow

import (
	"slices"

	"AgencyHub/Models"
)

// RoleSet is the set of RACI roles a user holds on one task. Roles are not
// exclusive: the same user can be accountable and consulted at once, so every
// check is a membership test, never an equality switch.
type RoleSet uint8

const (
	RoleResponsible RoleSet = 1 << iota
	RoleAccountable
	RoleConsulted
	RoleInformed
)

func (rs RoleSet) Has(r RoleSet) bool {
	return rs&r != 0
}

// RolesFor computes the role set of userID on task.
func RolesFor(userID string, task *Models.TaskItem) RoleSet {
	var rs RoleSet
	if userID == "" || task == nil {
		return rs
	}
	if task.ResponsibleUser == userID {
		rs |= RoleResponsible
	}
	if task.AccountableUser == userID {
		rs |= RoleAccountable
	}
	if slices.Contains(task.ConsultedUsers, userID) {
		rs |= RoleConsulted
	}
	if slices.Contains(task.InformedUsers, userID) {
		rs |= RoleInformed
	}
	return rs
}

// Action is the primary UI action offered to a user for a task.
type Action string

const (
	ActionComplete Action = "complete"
	ActionReview   Action = "review"
	ActionConsult  Action = "consult"
	ActionView     Action = "view"
)

// PrimaryAction picks the action shown for a role set at a given status.
// Priority: responsible with an actionable status, then accountable with a
// reviewable status, then consulted, then the read-only view.
func PrimaryAction(rs RoleSet, status Models.TaskStatus) Action {
	if rs.Has(RoleResponsible) && (status == Models.StatusPending || status == Models.StatusCorrectionNeeded) {
		return ActionComplete
	}
	if rs.Has(RoleAccountable) && status == Models.StatusInReview {
		return ActionReview
	}
	if rs.Has(RoleConsulted) {
		return ActionConsult
	}
	return ActionView
}

// Names returns the held roles as strings, for API responses.
func (rs RoleSet) Names() []string {
	var names []string
	if rs.Has(RoleResponsible) {
		names = append(names, "responsible")
	}
	if rs.Has(RoleAccountable) {
		names = append(names, "accountable")
	}
	if rs.Has(RoleConsulted) {
		names = append(names, "consulted")
	}
	if rs.Has(RoleInformed) {
		names = append(names, "informed")
	}
	return names
}
