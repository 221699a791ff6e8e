package example

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusDeclined InvitationStatus = "DECLINED"
)

type Invitation struct {
	Role   Role
	Status InvitationStatus
	Email  string
}

func bad() {
	inv := &Invitation{}
	inv.Role = "OWNER"     // want "enum field Role assigned string literal"
	inv.Status = "REVOKED" // want "enum field Status assigned string literal"

	_ = Invitation{Status: "ACCEPTED"} // want "enum field Status assigned string literal"
}

func good() {
	inv := &Invitation{}
	inv.Role = RoleMember
	inv.Status = InvitationStatusDeclined
	inv.Email = "carol@acme.test"

	_ = Invitation{Role: RoleAdmin, Status: InvitationStatusPending}
}

func alsoGood() {
	// Variable, not literal
	role := RoleAdmin
	inv := Invitation{Role: role}
	_ = inv
}
