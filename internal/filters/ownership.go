package filters

// Requester is the actor a policy is evaluated for. A nil Requester is an
// anonymous caller.
type Requester interface {
	RequesterID() int64
	Roles() RoleSet
}

// Subject is the ownership view of a record.
type Subject interface {
	// IsNew reports whether the record has no persisted identity yet.
	IsNew() bool
	// OwnerID returns the id of the person the record belongs to. ok is
	// false when the record carries no owner key.
	OwnerID() (id int64, ok bool)
}

// Ownership is the relationship between a requester and a record.
type Ownership int

const (
	NotOwner Ownership = iota
	Owner
	// CreatingAsOwner applies to records not yet persisted: the requester
	// creating them is treated as their owner.
	CreatingAsOwner
)

// IsOwner reports whether owner-gated groups apply.
func (o Ownership) IsOwner() bool {
	return o == Owner || o == CreatingAsOwner
}

func (o Ownership) String() string {
	switch o {
	case Owner:
		return "owner"
	case CreatingAsOwner:
		return "creating_as_owner"
	default:
		return "not_owner"
	}
}

// DetermineOwnership computes the relationship between requester and record.
func DetermineOwnership(record Subject, requester Requester) Ownership {
	if requester == nil || record == nil {
		return NotOwner
	}
	if record.IsNew() {
		return CreatingAsOwner
	}
	if id, ok := record.OwnerID(); ok && id == requester.RequesterID() {
		return Owner
	}
	return NotOwner
}
