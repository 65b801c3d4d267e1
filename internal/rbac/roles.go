package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner       = "owner"
	RoleAnalyst     = "analyst"
	RoleRiskOfficer = "risk_officer"
	RoleSuperAdmin  = "super_admin"
	RoleFraudDesk   = "fraud_desk" // hidden role
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleFraudDesk }
