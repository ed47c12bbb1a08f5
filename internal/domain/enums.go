package domain

// Status is the workflow position of a budget version.
type Status string

const (
	StatusDraft                  Status = "draft"
	StatusObserved               Status = "observed"
	StatusPendingAdministrative  Status = "pending_administrative"
	StatusInReviewAdministrative Status = "in_review_administrative"
	StatusPendingProvisioning    Status = "pending_provisioning"
	StatusInReviewProvisioning   Status = "in_review_provisioning"
	StatusPendingGeneral         Status = "pending_general"
	StatusInReviewGeneral        Status = "in_review_general"
	StatusPendingLoading         Status = "pending_loading"
	StatusInLoading              Status = "in_loading"
	StatusLoaded                 Status = "loaded"
	StatusRejected               Status = "rejected"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []Status{
	StatusDraft,
	StatusObserved,
	StatusPendingAdministrative,
	StatusInReviewAdministrative,
	StatusPendingProvisioning,
	StatusInReviewProvisioning,
	StatusPendingGeneral,
	StatusInReviewGeneral,
	StatusPendingLoading,
	StatusInLoading,
	StatusLoaded,
	StatusRejected,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusObserved,
		StatusPendingAdministrative, StatusInReviewAdministrative,
		StatusPendingProvisioning, StatusInReviewProvisioning,
		StatusPendingGeneral, StatusInReviewGeneral,
		StatusPendingLoading, StatusInLoading,
		StatusLoaded, StatusRejected:
		return true
	}
	return false
}

// IsEditable reports whether the owner may still change the budget in place.
func (s Status) IsEditable() bool {
	return s == StatusDraft || s == StatusObserved
}

// IsTerminal reports whether no action can move the budget further.
func (s Status) IsTerminal() bool {
	return s == StatusLoaded || s == StatusRejected
}

// IsInReview reports whether the status is one of the gerencia review stages.
func (s Status) IsInReview() bool {
	switch s {
	case StatusInReviewAdministrative, StatusInReviewProvisioning, StatusInReviewGeneral:
		return true
	}
	return false
}

// IsClaimed reports whether the status implies a held claim.
func (s Status) IsClaimed() bool {
	return s.IsInReview() || s == StatusInLoading
}

// Action is a workflow operation applied to a budget.
type Action string

const (
	ActionSubmit                 Action = "submit"
	ActionClaim                  Action = "claim"
	ActionRelease                Action = "release"
	ActionApprove                Action = "approve"
	ActionApproveConditional     Action = "approve_conditional"
	ActionReject                 Action = "reject"
	ActionObserve                Action = "observe"
	ActionDerive                 Action = "derive"
	ActionEscalate               Action = "escalate"
	ActionReturnToOwner          Action = "return_to_owner"
	ActionReturnToAdministrative Action = "return_to_administrative"
	ActionReturnToProvisioning   Action = "return_to_provisioning"
	ActionReturnToGeneral        Action = "return_to_general"
	ActionMarkLoaded             Action = "mark_loaded"
	ActionNewVersion             Action = "new_version"
	ActionAutoRelease            Action = "auto_release"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionSubmit, ActionClaim, ActionRelease,
		ActionApprove, ActionApproveConditional, ActionReject, ActionObserve,
		ActionDerive, ActionEscalate,
		ActionReturnToOwner, ActionReturnToAdministrative, ActionReturnToProvisioning, ActionReturnToGeneral,
		ActionMarkLoaded, ActionNewVersion, ActionAutoRelease:
		return true
	}
	return false
}

// RequiresClaim reports whether only the current assignee may apply the action.
func (a Action) RequiresClaim() bool {
	switch a {
	case ActionSubmit, ActionClaim, ActionNewVersion, ActionAutoRelease:
		return false
	}
	return true
}

// AuditOutcome is the terminal review verdict recorded on a budget.
// It stays put while the status keeps moving through the loading stages.
type AuditOutcome string

const (
	AuditOutcomeApproved              AuditOutcome = "approved"
	AuditOutcomeConditionallyApproved AuditOutcome = "conditionally_approved"
	AuditOutcomeRejected              AuditOutcome = "rejected"
)

func (o AuditOutcome) String() string { return string(o) }

func (o AuditOutcome) IsValid() bool {
	switch o {
	case AuditOutcomeApproved, AuditOutcomeConditionallyApproved, AuditOutcomeRejected:
		return true
	}
	return false
}

// UserRole is the role an authenticated principal acts under.
type UserRole string

const (
	RoleUser                  UserRole = "user"
	RoleAdministrativeManager UserRole = "gerencia_administrativa"
	RoleProvisioningManager   UserRole = "gerencia_prestacional"
	RoleGeneralManager        UserRole = "gerencia_general"
	RoleLoadingOperator       UserRole = "operador_carga"
	RoleAdmin                 UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdministrativeManager, RoleProvisioningManager,
		RoleGeneralManager, RoleLoadingOperator, RoleAdmin:
		return true
	}
	return false
}

// ReturnDestination is where a budget is sent back to.
type ReturnDestination string

const (
	DestinationOwner          ReturnDestination = "owner"
	DestinationAdministrative ReturnDestination = "administrative"
	DestinationProvisioning   ReturnDestination = "provisioning"
	DestinationGeneral        ReturnDestination = "general"
)

func (d ReturnDestination) String() string { return string(d) }

func (d ReturnDestination) IsValid() bool {
	switch d {
	case DestinationOwner, DestinationAdministrative, DestinationProvisioning, DestinationGeneral:
		return true
	}
	return false
}

// Action maps the destination to the return action that reaches it.
func (d ReturnDestination) Action() Action {
	switch d {
	case DestinationOwner:
		return ActionReturnToOwner
	case DestinationAdministrative:
		return ActionReturnToAdministrative
	case DestinationProvisioning:
		return ActionReturnToProvisioning
	case DestinationGeneral:
		return ActionReturnToGeneral
	}
	return ""
}

// NotificationCategory tags a notification. Most categories mirror the
// status the budget moved to.
type NotificationCategory string

// CategoryLoadingQueue marks a budget that entered the loading operators' queue.
const CategoryLoadingQueue NotificationCategory = "loading_queue"

// CategoryFor returns the category that mirrors a status.
func CategoryFor(s Status) NotificationCategory { return NotificationCategory(s) }

func (c NotificationCategory) String() string { return string(c) }
