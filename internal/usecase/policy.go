package usecase

import "movie-portal/internal/data/entity"

// Principal is the authenticated caller as seen by the services. Anonymous
// callers are represented by the zero value.
type Principal struct {
	Name string
	Role entity.UserRole
}

// Anonymous reports whether no authenticated user is attached to the request.
func (p Principal) Anonymous() bool {
	return p.Name == ""
}

func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// Action enumerates everything the policy table gates. Read access to the
// catalog is open to everyone and has no action.
type Action string

const (
	ActionManageCatalog Action = "catalog:manage"
	ActionCreateReview  Action = "review:create"
	ActionEditReview    Action = "review:edit"
	ActionDeleteReview  Action = "review:delete"
	ActionViewStats     Action = "stats:view"
)

// policy is the single source of truth for role-based access. Ownership
// checks (only the author may edit their review) are layered on top by the
// services; this table answers the role question only.
var policy = map[entity.UserRole]map[Action]bool{
	entity.RoleUser: {
		ActionCreateReview: true,
		ActionEditReview:   true,
		ActionDeleteReview: true,
	},
	entity.RoleAdmin: {
		ActionManageCatalog: true,
		ActionCreateReview:  true,
		ActionEditReview:    true,
		ActionDeleteReview:  true,
		ActionViewStats:     true,
	},
}

// Can reports whether the principal's role permits the action. Anonymous
// principals are permitted nothing.
func (p Principal) Can(action Action) bool {
	if p.Anonymous() {
		return false
	}
	return policy[p.Role][action]
}

// CanTouchReview decides edit and delete rights on a specific review.
// Editing is reserved to the author alone; deleting is allowed for the
// author or an admin.
func (p Principal) CanTouchReview(author string, action Action) bool {
	if !p.Can(action) {
		return false
	}
	switch action {
	case ActionEditReview:
		return p.Name == author
	case ActionDeleteReview:
		return p.Name == author || p.IsAdmin()
	default:
		return false
	}
}
