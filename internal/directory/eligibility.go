package directory

import "errors"

var (
	// ErrNotEligible rejects a gated mutation whose precondition does not
	// hold. Repeating the call cannot succeed without a state change
	// elsewhere (the owner upgrading their plan).
	ErrNotEligible = errors.New("agency is not eligible for this operation")
	ErrValidation  = errors.New("invalid input")
	// ErrNotFound reports an absent record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a lost compare-and-swap on a flag toggle.
	ErrConflict = errors.New("record was modified concurrently")
	// ErrUploadFailed reports a failed media write.
	ErrUploadFailed = errors.New("upload failed")
)

// PubliclyVisible reports whether the agency appears in public listings.
// Approval is the only input; no other field influences the result.
func PubliclyVisible(a Agency) bool {
	return a.IsApproved
}

// Featurable reports whether the agency may be marked featured. An agency
// without an owner can never be featured; otherwise the owner must be on the
// premium plan. A nil owner means the referenced user could not be resolved
// and is treated as not eligible.
func Featurable(a Agency, owner *User) bool {
	if a.OwnerUserID == "" || owner == nil {
		return false
	}
	return owner.SubscriptionPlan == PlanPremium
}

// CanEdit reports whether the actor may mutate the agency, including its
// embedded sub-records. Owners edit their own agencies; admins edit anything.
func CanEdit(a Agency, actor Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return a.OwnerUserID != "" && actor.ID == a.OwnerUserID
}

// ResolveOwnerPlans maps distinct owner IDs to their users so listings can
// annotate rows with one lookup per distinct owner instead of one per row.
func ResolveOwnerPlans(agencies []Agency, owners []User) map[string]*User {
	byID := make(map[string]*User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	resolved := make(map[string]*User, len(agencies))
	for _, agency := range agencies {
		if agency.OwnerUserID == "" {
			continue
		}
		if owner, ok := byID[agency.OwnerUserID]; ok {
			resolved[agency.OwnerUserID] = owner
		}
	}
	return resolved
}

// DistinctOwnerIDs collects the unique non-empty owner references of a
// listing, preserving first-seen order.
func DistinctOwnerIDs(agencies []Agency) []string {
	seen := make(map[string]struct{}, len(agencies))
	ids := make([]string, 0, len(agencies))
	for _, agency := range agencies {
		if agency.OwnerUserID == "" {
			continue
		}
		if _, ok := seen[agency.OwnerUserID]; ok {
			continue
		}
		seen[agency.OwnerUserID] = struct{}{}
		ids = append(ids, agency.OwnerUserID)
	}
	return ids
}
