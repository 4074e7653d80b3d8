package users

import "time"

// Role define los tres tipos de usuario del sistema.
// @Enum Admin, Doctor, PetParent
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDoctor    Role = "Doctor"
	RolePetParent Role = "PetParent"
)

// User es la identidad base. Los campos específicos de rol conviven
// en la misma struct en vez de subtipos: name/adminId para Admin,
// name/doctorId para Doctor, phone/city para PetParent.
type User struct {
	ID string

	Username     string
	Email        string // único
	PasswordHash string
	Role         Role

	Name     string
	AdminID  string
	DoctorID string
	Phone    string
	City     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
