package pereval

// CanEdit reports whether a pass may still be edited through the
// submission surface. Only records no moderator has touched qualify.
func CanEdit(s Status) bool {
	return s == StatusNew
}

// CanTransition reports whether a moderation status change is legal.
// Records move forward only: new -> pending -> accepted|rejected.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusNew:
		return to == StatusPending
	case StatusPending:
		return to == StatusAccepted || to == StatusRejected
	}
	return false
}

// DiffUserFields compares every submitter field present in the patch
// against the stored user and returns the names of those that differ.
// An empty result means the patch carries no identity change.
func DiffUserFields(stored User, patch UserPayload) []string {
	var diff []string
	if patch.Email != nil && *patch.Email != stored.Email {
		diff = append(diff, "email")
	}
	if patch.Fam != nil && *patch.Fam != stored.Fam {
		diff = append(diff, "fam")
	}
	if patch.Name != nil && *patch.Name != stored.Name {
		diff = append(diff, "name")
	}
	if patch.Otc != nil && *patch.Otc != stored.Otc {
		diff = append(diff, "otc")
	}
	if patch.Phone != nil && *patch.Phone != stored.Phone {
		diff = append(diff, "phone")
	}
	return diff
}
