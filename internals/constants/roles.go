package constants

// Closed role set. Role strings live in the JWT claim and the users table;
// everything else goes through the capability table below.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleCoAdmin    = "co_admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

// Capability tags checked by the role middleware.
const (
	CapManageUsers     = "manage_users"
	CapManageCourses   = "manage_courses"
	CapManageSchedule  = "manage_schedule"
	CapReviewRequests  = "review_requests"
	CapTeachCourses    = "teach_courses"
	CapAttendCourses   = "attend_courses"
	CapSendBroadcast   = "send_broadcast"
	CapRecordAttendance = "record_attendance"
)

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin, RoleSuperAdmin, RoleCoAdmin, RoleTeacher, RoleStudent,
	}
	AdminRoles   = []string{RoleAdmin, RoleSuperAdmin, RoleCoAdmin}
	TeacherRoles = []string{RoleTeacher}
	StudentRoles = []string{RoleStudent}
)

// roleCapabilities maps each role to its capability set. Consulted once per
// request by the role middleware instead of scattering string comparisons
// through the handlers.
var roleCapabilities = map[string]map[string]struct{}{
	RoleSuperAdmin: capSet(
		CapManageUsers, CapManageCourses, CapManageSchedule,
		CapReviewRequests, CapSendBroadcast,
	),
	RoleAdmin: capSet(
		CapManageUsers, CapManageCourses, CapManageSchedule,
		CapReviewRequests, CapSendBroadcast,
	),
	RoleCoAdmin: capSet(
		CapManageCourses, CapManageSchedule, CapReviewRequests,
	),
	RoleTeacher: capSet(
		CapTeachCourses, CapRecordAttendance,
	),
	RoleStudent: capSet(
		CapAttendCourses,
	),
}

func capSet(caps ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		m[c] = struct{}{}
	}
	return m
}

// RoleHas reports whether the role carries the capability.
func RoleHas(role, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

// IsKnownRole reports whether the role belongs to the closed set.
func IsKnownRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
