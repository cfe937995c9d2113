// Package access holds the pure access-control decisions for projects and
// tasks. Resolvers in the service layer translate these decisions into scoped
// repository lookups; nothing in this package touches storage.
package access

import "github.com/gkharab/projecthub-api/internal/models"

// Scope selects the lookup strategy a resolver must use for a role.
type Scope int

const (
	// ScopeGlobal resolves by id alone.
	ScopeGlobal Scope = iota
	// ScopeOwner resolves by id and project owner == actor.
	ScopeOwner
	// ScopeAssignee resolves by id and task assignee == actor.
	ScopeAssignee
)

// Decision is the outcome of a post-lookup access check.
type Decision int

const (
	// Grant allows the operation.
	Grant Decision = iota
	// DenyNotFound hides the resource's existence from the actor.
	DenyNotFound
	// DenyForbidden rejects the actor but reveals that the resource exists.
	DenyForbidden
)

// projectReadScopes and taskReadScopes keep the per-role lookup strategy
// table-driven so the NotFound/Forbidden asymmetry between the two resource
// types stays explicit.
var projectReadScopes = map[models.Role]Scope{
	models.RoleAdmin:   ScopeGlobal,
	models.RoleManager: ScopeOwner,
	models.RoleUser:    ScopeOwner,
}

var taskReadScopes = map[models.Role]Scope{
	models.RoleAdmin:   ScopeGlobal,
	models.RoleManager: ScopeGlobal, // owner check happens after the lookup
	models.RoleUser:    ScopeAssignee,
}

// ProjectReadScope returns the lookup scope for resolving a project. Admins
// resolve by id alone; everyone else resolves by id and ownership, so a
// non-owned existing project is indistinguishable from a nonexistent one.
func ProjectReadScope(role models.Role) Scope {
	if s, ok := projectReadScopes[role]; ok {
		return s
	}
	return ScopeOwner
}

// TaskReadScope returns the lookup scope for resolving a task
func TaskReadScope(role models.Role) Scope {
	if s, ok := taskReadScopes[role]; ok {
		return s
	}
	return ScopeAssignee
}

// TaskReadAfterLookup decides task read access once the task has been fetched
// under TaskReadScope. Managers who do not own the task's project are denied
// with Forbidden rather than NotFound: existence is revealed to managers,
// unlike the project case.
func TaskReadAfterLookup(role models.Role, ownerMatch bool) Decision {
	if role == models.RoleManager && !ownerMatch {
		return DenyForbidden
	}
	return Grant
}

// CanCreateProject reports whether the role may create projects
func CanCreateProject(role models.Role) bool {
	return role != models.RoleUser
}

// CanAssignTasks reports whether the role may assign tasks to users. This
// gate applies before any lookup, so a USER actor never learns whether the
// task id exists.
func CanAssignTasks(role models.Role) bool {
	return role != models.RoleUser
}

// CanModifyTask decides general task mutation (update/delete) eligibility:
// admins always, managers only for tasks in projects they own. The assignee
// has no general modify rights; status update is the sole exception.
func CanModifyTask(role models.Role, ownerMatch bool) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleManager && ownerMatch
}

// CanUpdateTaskStatus decides the status-update path. Only the assigned user
// may move a task between statuses, regardless of role or project ownership.
func CanUpdateTaskStatus(assigneeMatch bool) bool {
	return assigneeMatch
}
