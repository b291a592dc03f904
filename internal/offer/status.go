package offer

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true, StatusRejected: true},
	StatusApproved: {},
	StatusRejected: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func (a Action) target() Status {
	if a == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// Actions lists what an admin may still do with o.
func Actions(o Offer) []Action {
	var out []Action
	for _, a := range []Action{ActionApprove, ActionReject} {
		if CanTransition(o.Status, a.target()) {
			out = append(out, a)
		}
	}
	return out
}
