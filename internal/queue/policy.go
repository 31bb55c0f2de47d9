package queue

// OrderingPolicy decides how due and new items interleave in a batch. The
// source documents describe both strict due-then-new and alternating mixes,
// so the policy is named and swappable rather than hard-coded.
type OrderingPolicy interface {
	Name() string
	Order(due, fresh []ItemDescriptor) []ItemDescriptor
}

// DueFirst serves the whole due subset (already weakest-first) before any
// new item. This is the default policy.
type DueFirst struct{}

func (DueFirst) Name() string { return "due_first" }

func (DueFirst) Order(due, fresh []ItemDescriptor) []ItemDescriptor {
	out := make([]ItemDescriptor, 0, len(due)+len(fresh))
	out = append(out, due...)
	return append(out, fresh...)
}

// Alternate interleaves due and new items one-for-one, appending whichever
// side runs longer. Due items keep their weakest-first order.
type Alternate struct{}

func (Alternate) Name() string { return "alternate" }

func (Alternate) Order(due, fresh []ItemDescriptor) []ItemDescriptor {
	out := make([]ItemDescriptor, 0, len(due)+len(fresh))
	for i := 0; i < len(due) || i < len(fresh); i++ {
		if i < len(due) {
			out = append(out, due[i])
		}
		if i < len(fresh) {
			out = append(out, fresh[i])
		}
	}
	return out
}
