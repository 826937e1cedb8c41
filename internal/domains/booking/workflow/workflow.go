package workflow

import (
	"slices"
	"time"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/shared/constant"
)

// Status values are wire-stable and must not be renamed without a migration.
const (
	StatusSubmitted         = "submitted"
	StatusGDApproved        = "gd_approved"
	StatusGDRejected        = "gd_rejected"
	StatusSecretaryApproved = "secretary_approved"
	StatusSecretaryRejected = "secretary_rejected"
	StatusITSetupComplete   = "it_setup_complete"
	StatusCompleted         = "completed"
	StatusCancelled         = "cancelled"
)

// ResubmitRemarks is the history message for a booking that re-enters the
// approval chain after an edit, distinguishing it from first submission.
const ResubmitRemarks = "Booking edited and resubmitted"

// transitionSources is the authoritative transition table: for each target
// status, the source statuses a booking may move from. `submitted` is absent
// on purpose; it is reachable only through creation or edit-resubmission.
var transitionSources = map[string][]string{
	StatusGDApproved:        {StatusSubmitted},
	StatusGDRejected:        {StatusSubmitted},
	StatusSecretaryApproved: {StatusGDApproved},
	StatusSecretaryRejected: {StatusGDApproved},
	StatusITSetupComplete:   {StatusSecretaryApproved},
	StatusCompleted:         {StatusITSetupComplete},
	StatusCancelled: {
		StatusSubmitted,
		StatusGDApproved,
		StatusSecretaryApproved,
		StatusGDRejected,
		StatusSecretaryRejected,
	},
}

// actorRoles maps each target status to the single role allowed to request
// it. `cancelled` additionally requires the actor to own the booking.
var actorRoles = map[string]string{
	StatusGDApproved:        constant.RoleGroupDirector,
	StatusGDRejected:        constant.RoleGroupDirector,
	StatusSecretaryApproved: constant.RoleSecretary,
	StatusSecretaryRejected: constant.RoleSecretary,
	StatusITSetupComplete:   constant.RoleITTeam,
	StatusCompleted:         constant.RoleITTeam,
	StatusCancelled:         constant.RoleUser,
}

// StageStamp describes the approval-stage columns written alongside a
// transition. Stamped fields form a permanent record and are never cleared.
type StageStamp struct {
	DateColumn     string
	RemarksColumn  string
	DefaultRemarks string
}

var stageStamps = map[string]StageStamp{
	StatusGDApproved:        {DateColumn: model.FieldGDApprovalDate, RemarksColumn: model.FieldGDRemarks, DefaultRemarks: "Approved by group director"},
	StatusGDRejected:        {DateColumn: model.FieldGDApprovalDate, RemarksColumn: model.FieldGDRemarks, DefaultRemarks: "Rejected by group director"},
	StatusSecretaryApproved: {DateColumn: model.FieldSecretaryApprovalDate, RemarksColumn: model.FieldSecretaryRemarks, DefaultRemarks: "Approved by secretary"},
	StatusSecretaryRejected: {DateColumn: model.FieldSecretaryApprovalDate, RemarksColumn: model.FieldSecretaryRemarks, DefaultRemarks: "Rejected by secretary"},
	StatusITSetupComplete:   {DateColumn: model.FieldITSetupDate, RemarksColumn: model.FieldITRemarks, DefaultRemarks: "IT setup completed"},
}

var defaultRemarks = map[string]string{
	StatusSubmitted: "Booking submitted",
	StatusCompleted: "Booking completed",
	StatusCancelled: "Booking cancelled",
}

// pendingStatusByRole maps an approver role to the one status it acts on.
var pendingStatusByRole = map[string]string{
	constant.RoleGroupDirector: StatusSubmitted,
	constant.RoleSecretary:     StatusGDApproved,
	constant.RoleITTeam:        StatusSecretaryApproved,
}

// processedStatusesByRole maps an approver role to the statuses indicating
// the role has already acted on a booking, for audit dashboards.
var processedStatusesByRole = map[string][]string{
	constant.RoleGroupDirector: {
		StatusGDApproved,
		StatusGDRejected,
		StatusSecretaryApproved,
		StatusSecretaryRejected,
		StatusITSetupComplete,
		StatusCompleted,
	},
	constant.RoleSecretary: {
		StatusSecretaryApproved,
		StatusSecretaryRejected,
		StatusITSetupComplete,
		StatusCompleted,
	},
	constant.RoleITTeam: {
		StatusITSetupComplete,
		StatusCompleted,
	},
}

// activeStatuses are the statuses that block a venue slot. Rejected and
// cancelled bookings never count toward availability conflicts.
var activeStatuses = []string{
	StatusSubmitted,
	StatusGDApproved,
	StatusSecretaryApproved,
	StatusITSetupComplete,
	StatusCompleted,
}

// editableStatuses are the statuses from which the owner may edit and
// resubmit a booking.
var editableStatuses = []string{
	StatusSubmitted,
	StatusGDRejected,
	StatusSecretaryRejected,
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusSubmitted, StatusGDApproved, StatusGDRejected,
		StatusSecretaryApproved, StatusSecretaryRejected,
		StatusITSetupComplete, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the transition table permits moving a booking
// from status `from` to status `to`.
func CanTransition(from, to string) bool {
	sources, ok := transitionSources[to]
	if !ok {
		return false
	}

	return slices.Contains(sources, from)
}

// RequiredRole returns the role authorized to request the target status.
func RequiredRole(target string) (string, bool) {
	role, ok := actorRoles[target]

	return role, ok
}

// StampFor returns the stage columns written when a booking reaches the
// target status. The second result is false for unstamped statuses
// (`submitted`, `cancelled`, `completed`).
func StampFor(target string) (StageStamp, bool) {
	stamp, ok := stageStamps[target]

	return stamp, ok
}

// DefaultRemarksFor returns the history message used when a transition
// carries no remarks.
func DefaultRemarksFor(target string) string {
	if stamp, ok := stageStamps[target]; ok {
		return stamp.DefaultRemarks
	}

	return defaultRemarks[target]
}

func PendingStatusFor(role string) (string, bool) {
	status, ok := pendingStatusByRole[role]

	return status, ok
}

func ProcessedStatusesFor(role string) ([]string, bool) {
	statuses, ok := processedStatusesByRole[role]
	if !ok {
		return nil, false
	}

	return slices.Clone(statuses), true
}

func IsActive(status string) bool {
	return slices.Contains(activeStatuses, status)
}

func IsEditable(status string) bool {
	return slices.Contains(editableStatuses, status)
}

func ActiveStatuses() []string {
	return slices.Clone(activeStatuses)
}

// Overlaps applies the half-open interval test to two [start,end) ranges:
// ranges that merely touch at a boundary do not overlap.
func Overlaps(reqStart, reqEnd, existingStart, existingEnd time.Time) bool {
	return reqStart.Before(existingEnd) && existingStart.Before(reqEnd)
}
