package domain

import (
	"errors"
	"fmt"
	"slices"
)

// TransitionKey identifies a row of the transition table.
type TransitionKey struct {
	From   Status
	Action Action
}

// Transitions is the complete workflow state machine. A (status, action)
// pair missing from the table is not a legal move.
var Transitions = map[TransitionKey]Status{
	{StatusDraft, ActionSubmit}:    StatusPendingAdministrative,
	{StatusObserved, ActionSubmit}: StatusPendingAdministrative,

	{StatusPendingAdministrative, ActionClaim}: StatusInReviewAdministrative,
	{StatusPendingProvisioning, ActionClaim}:   StatusInReviewProvisioning,
	{StatusPendingGeneral, ActionClaim}:        StatusInReviewGeneral,
	{StatusPendingLoading, ActionClaim}:        StatusInLoading,

	{StatusInReviewAdministrative, ActionRelease}: StatusPendingAdministrative,
	{StatusInReviewProvisioning, ActionRelease}:   StatusPendingProvisioning,
	{StatusInReviewGeneral, ActionRelease}:        StatusPendingGeneral,
	{StatusInLoading, ActionRelease}:              StatusPendingLoading,

	{StatusInReviewAdministrative, ActionApprove}:            StatusPendingLoading,
	{StatusInReviewAdministrative, ActionApproveConditional}: StatusPendingLoading,
	{StatusInReviewAdministrative, ActionReject}:             StatusRejected,
	{StatusInReviewAdministrative, ActionObserve}:            StatusObserved,
	{StatusInReviewAdministrative, ActionDerive}:             StatusPendingProvisioning,

	{StatusInReviewProvisioning, ActionApprove}:            StatusPendingLoading,
	{StatusInReviewProvisioning, ActionApproveConditional}: StatusPendingLoading,
	{StatusInReviewProvisioning, ActionReject}:             StatusRejected,
	{StatusInReviewProvisioning, ActionObserve}:            StatusObserved,
	{StatusInReviewProvisioning, ActionEscalate}:           StatusPendingGeneral,

	{StatusInReviewGeneral, ActionApprove}:                StatusPendingLoading,
	{StatusInReviewGeneral, ActionApproveConditional}:     StatusPendingLoading,
	{StatusInReviewGeneral, ActionReject}:                 StatusRejected,
	{StatusInReviewGeneral, ActionObserve}:                StatusObserved,
	{StatusInReviewGeneral, ActionReturnToAdministrative}: StatusPendingAdministrative,
	{StatusInReviewGeneral, ActionReturnToProvisioning}:   StatusPendingProvisioning,

	{StatusInLoading, ActionMarkLoaded}:             StatusLoaded,
	{StatusInLoading, ActionReturnToOwner}:          StatusDraft,
	{StatusInLoading, ActionReturnToAdministrative}: StatusPendingAdministrative,
	{StatusInLoading, ActionReturnToProvisioning}:   StatusPendingProvisioning,
	{StatusInLoading, ActionReturnToGeneral}:        StatusPendingGeneral,
}

// Next returns the status reached by applying action to from.
func Next(from Status, action Action) (Status, bool) {
	to, ok := Transitions[TransitionKey{From: from, Action: action}]
	return to, ok
}

// ReleaseTargets maps each claimed status to the pending status a released
// claim falls back to. It is derived from the release rows of Transitions.
var ReleaseTargets = releaseTargets()

func releaseTargets() map[Status]Status {
	out := make(map[Status]Status)
	for k, to := range Transitions {
		if k.Action == ActionRelease {
			out[k.From] = to
		}
	}
	return out
}

// OutcomeFor returns the audit outcome an action records, if any.
func OutcomeFor(action Action) (AuditOutcome, bool) {
	switch action {
	case ActionApprove:
		return AuditOutcomeApproved, true
	case ActionApproveConditional:
		return AuditOutcomeConditionallyApproved, true
	case ActionReject:
		return AuditOutcomeRejected, true
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Audiences
// ---------------------------------------------------------------------------

// pendingQueueRole is the role whose members work each pending queue.
var pendingQueueRole = map[Status]UserRole{
	StatusPendingAdministrative: RoleAdministrativeManager,
	StatusPendingProvisioning:   RoleProvisioningManager,
	StatusPendingGeneral:        RoleGeneralManager,
	StatusPendingLoading:        RoleLoadingOperator,
}

// QueueRole returns the role that works the given pending status.
func QueueRole(s Status) (UserRole, bool) {
	r, ok := pendingQueueRole[s]
	return r, ok
}

// QueueStatus returns the pending status worked by the given role.
func QueueStatus(r UserRole) (Status, bool) {
	for s, role := range pendingQueueRole {
		if role == r {
			return s, true
		}
	}
	return "", false
}

// Recipient is one addressee class for a transition's notifications.
// Either Owner is true or Role is set.
type Recipient struct {
	Owner    bool
	Role     UserRole
	Category NotificationCategory
}

// AudienceFor returns who is notified when action moves a budget to to.
// Claims, releases and new versions notify nobody.
func AudienceFor(action Action, to Status) []Recipient {
	owner := Recipient{Owner: true, Category: CategoryFor(to)}

	switch action {
	case ActionClaim, ActionRelease, ActionAutoRelease, ActionNewVersion:
		return nil
	case ActionSubmit:
		return []Recipient{{Role: RoleAdministrativeManager, Category: CategoryFor(to)}}
	case ActionApprove, ActionApproveConditional:
		return []Recipient{
			owner,
			{Role: RoleLoadingOperator, Category: CategoryLoadingQueue},
			{Role: RoleAdministrativeManager, Category: CategoryFor(to)},
		}
	case ActionReject:
		return []Recipient{owner, {Role: RoleAdministrativeManager, Category: CategoryFor(to)}}
	case ActionObserve, ActionReturnToOwner, ActionMarkLoaded:
		return []Recipient{owner}
	case ActionDerive, ActionEscalate,
		ActionReturnToAdministrative, ActionReturnToProvisioning, ActionReturnToGeneral:
		out := []Recipient{owner}
		if role, ok := QueueRole(to); ok {
			out = append(out, Recipient{Role: role, Category: CategoryFor(to)})
		}
		return out
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// reviewActions must be accepted by every in-review status.
var reviewActions = []Action{
	ActionApprove, ActionApproveConditional, ActionReject, ActionObserve, ActionRelease,
}

// ValidateTransitions checks the transition table for holes: unknown
// statuses or actions, non-terminal dead ends, claims without a matching
// release, and review stages missing a standard decision.
func ValidateTransitions() error {
	return validateTable(Transitions)
}

func validateTable(table map[TransitionKey]Status) error {
	var errs []error

	outgoing := make(map[Status][]Action)
	for k, to := range table {
		if !k.From.IsValid() {
			errs = append(errs, fmt.Errorf("unknown source status %q", k.From))
		}
		if !k.Action.IsValid() {
			errs = append(errs, fmt.Errorf("unknown action %q from %s", k.Action, k.From))
		}
		if !to.IsValid() {
			errs = append(errs, fmt.Errorf("%s --%s--> unknown status %q", k.From, k.Action, to))
		}
		if k.From.IsTerminal() {
			errs = append(errs, fmt.Errorf("terminal status %s has outgoing action %s", k.From, k.Action))
		}
		outgoing[k.From] = append(outgoing[k.From], k.Action)
	}

	reachable := reachableFrom(table, StatusDraft)
	for _, s := range reachable {
		if !s.IsTerminal() && len(outgoing[s]) == 0 {
			errs = append(errs, fmt.Errorf("status %s is reachable but has no outgoing action", s))
		}
	}
	for _, s := range AllStatuses {
		if !slices.Contains(reachable, s) {
			errs = append(errs, fmt.Errorf("status %s is unreachable from %s", s, StatusDraft))
		}
	}

	for k, to := range table {
		if k.Action != ActionClaim {
			continue
		}
		back, ok := table[TransitionKey{From: to, Action: ActionRelease}]
		if !ok || back != k.From {
			errs = append(errs, fmt.Errorf("claim %s -> %s has no release back to %s", k.From, to, k.From))
		}
	}

	for _, s := range AllStatuses {
		if !s.IsInReview() {
			continue
		}
		for _, a := range reviewActions {
			if _, ok := table[TransitionKey{From: s, Action: a}]; !ok {
				errs = append(errs, fmt.Errorf("review status %s does not accept %s", s, a))
			}
		}
	}

	return errors.Join(errs...)
}

func reachableFrom(table map[TransitionKey]Status, start Status) []Status {
	seen := []Status{start}
	queue := []Status{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for k, to := range table {
			if k.From == cur && !slices.Contains(seen, to) {
				seen = append(seen, to)
				queue = append(queue, to)
			}
		}
	}
	return seen
}
