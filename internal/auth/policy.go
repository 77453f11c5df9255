package auth

// Operation enumerates the gated actions of the platform.
type Operation string

const (
	OpManageRubrics    Operation = "rubrics.manage"
	OpManageUsers      Operation = "users.manage"
	OpUploadCall       Operation = "calls.upload"
	OpReadCall         Operation = "calls.read"
	OpCreateEvaluation Operation = "evaluations.create"
	OpReadEvaluation   Operation = "evaluations.read"
	OpViewDashboard    Operation = "dashboard.view"
)

// Actor is the resolved caller identity.
type Actor struct {
	ID        uint
	Role      Role
	Superuser bool
}

// Resource carries the ownership facts object-level checks need:
// who created the object and which agent's call it concerns. Either
// may be zero when not applicable.
type Resource struct {
	OwnerID uint
	AgentID uint
}

// Can reports whether the actor may perform the operation, optionally
// against a concrete resource. Superusers behave as admins.
func Can(actor Actor, op Operation, res *Resource) bool {
	if actor.Superuser || actor.Role == RoleAdmin {
		return true
	}

	switch op {
	case OpManageRubrics, OpManageUsers, OpViewDashboard:
		return false
	case OpUploadCall, OpCreateEvaluation:
		return actor.Role == RoleExpert
	case OpReadCall:
		if actor.Role == RoleExpert {
			return true
		}
		return res != nil && res.AgentID != 0 && res.AgentID == actor.ID
	case OpReadEvaluation:
		if res == nil {
			return false
		}
		if res.OwnerID != 0 && res.OwnerID == actor.ID {
			return true
		}
		return actor.Role == RoleAgent && res.AgentID != 0 && res.AgentID == actor.ID
	default:
		return false
	}
}
