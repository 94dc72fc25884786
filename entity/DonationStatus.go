package entity

// Roles - enum เดียวทั้งระบบ (storage + presentation ใช้ชุดเดียวกัน)
const (
	RoleAdmin     = "admin"
	RoleDonor     = "donor"
	RoleCharity   = "charity"
	RoleVolunteer = "volunteer"
)

// Donation status
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusExpired    = "expired"
)

// Task status
const (
	TaskOpen       = "open"
	TaskAssigned   = "assigned"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

// BusinessProfile status
const (
	BusinessPending  = "pending"
	BusinessApproved = "approved"
	BusinessRejected = "rejected"
)

var ValidRoles = []string{RoleAdmin, RoleDonor, RoleCharity, RoleVolunteer}

var validFoodTypes = map[string]bool{"prepared": true, "raw": true, "packaged": true, "other": true}
var validUnits = map[string]bool{"kg": true, "items": true, "servings": true}
var validTaskTypes = map[string]bool{"pickup": true, "delivery": true, "verification": true, "other": true}
var validPriorities = map[string]bool{"low": true, "medium": true, "high": true, "urgent": true}

func ValidFoodType(s string) bool { return validFoodTypes[s] }
func ValidUnit(s string) bool     { return validUnits[s] }
func ValidTaskType(s string) bool { return validTaskTypes[s] }
func ValidPriority(s string) bool { return validPriorities[s] }

// lifecycle graph ของ donation - ห้ามข้าม state
var donationNext = map[string][]string{
	StatusPending:    {StatusApproved, StatusCancelled, StatusExpired},
	StatusApproved:   {StatusInProgress, StatusCancelled, StatusExpired},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusExpired:    {},
}

func CanTransition(from, to string) bool {
	for _, s := range donationNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return len(donationNext[status]) == 0
}

// ParseDonationStatus รับค่าจาก client - รองรับชื่อเก่า
// picked_up/delivered (schema รุ่น mongo) map เข้า enum ปัจจุบัน
func ParseDonationStatus(s string) (string, bool) {
	switch s {
	case StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusCancelled, StatusExpired:
		return s, true
	case "picked_up":
		return StatusInProgress, true
	case "delivered":
		return StatusCompleted, true
	default:
		return "", false
	}
}
