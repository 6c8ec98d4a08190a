package cache

import (
	"strings"
	"time"
)

// Entity names a cached collection.
type Entity string

const (
	Employees            Entity = "employees"
	EmergencyContacts    Entity = "emergency_contacts"
	LeaveTypes           Entity = "leave_types"
	LeaveRequests        Entity = "leave_requests"
	LeaveBalances        Entity = "leave_balances"
	Holidays             Entity = "holidays"
	Attendance           Entity = "attendance"
	AttendanceStats      Entity = "attendance_stats"
	PayrollRuns          Entity = "payroll_runs"
	Payslips             Entity = "payslips"
	SalaryComponents     Entity = "salary_components"
	PerformanceReviews   Entity = "performance_reviews"
	PerformanceGoals     Entity = "performance_goals"
	PerformanceFeedback  Entity = "performance_feedback"
	PerformanceAnalytics Entity = "performance_analytics"
	Notifications        Entity = "notifications"
)

const (
	keyPrefix = "ems"
	scopeAll  = "all"
)

// Key identifies one cached value: an entity and the scope it was read for.
type Key struct {
	Entity Entity
	Scope  string
}

// All is the unscoped key of an entity.
func All(e Entity) Key {
	return Key{Entity: e, Scope: scopeAll}
}

// User is the key of an entity read for one user.
func User(e Entity, userID string) Key {
	return Key{Entity: e, Scope: "user:" + userID}
}

// Day is the key of an entity computed for one calendar day.
func Day(e Entity, day time.Time) Key {
	return Key{Entity: e, Scope: "day:" + day.Format("2006-01-02")}
}

// On narrows k to one calendar day.
func (k Key) On(day time.Time) Key {
	k.Scope += ":" + day.Format("2006-01-02")
	return k
}

// IsAll reports whether k is unscoped.
func (k Key) IsAll() bool {
	return k.Scope == scopeAll
}

func (k Key) String() string {
	return strings.Join([]string{keyPrefix, string(k.Entity), k.Scope}, ":")
}

func (k Key) pattern() string {
	return keyPrefix + ":" + string(k.Entity) + ":*"
}

// edges lists the entities whose cached values depend on another entity.
var edges = map[Entity][]Entity{
	Employees:          {EmergencyContacts, AttendanceStats, PerformanceAnalytics},
	Attendance:         {AttendanceStats},
	LeaveRequests:      {LeaveBalances},
	Payslips:           {PayrollRuns},
	PayrollRuns:        {Payslips},
	PerformanceReviews: {PerformanceAnalytics},
	PerformanceGoals:   {PerformanceAnalytics},
}

// Dependents returns the entities invalidated together with e.
func Dependents(e Entity) []Entity {
	return edges[e]
}

// expand returns k, the unscoped key of k's entity and the same pair for
// every dependent entity.
func expand(k Key) []Key {
	keys := []Key{k}
	if !k.IsAll() {
		keys = append(keys, All(k.Entity))
	}
	for _, dep := range edges[k.Entity] {
		d := Key{Entity: dep, Scope: k.Scope}
		keys = append(keys, d)
		if !d.IsAll() {
			keys = append(keys, All(dep))
		}
	}
	return keys
}
