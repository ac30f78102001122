package entity

import "time"

// Role foydalanuvchi roli
type Role int

const (
	RoleAdmin Role = iota
	RoleStaff
)

// String rol nomi
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	default:
		return "Unknown"
	}
}

// CanManageCatalog mahsulot qo'shish va o'chirishga ruxsat (faqat admin)
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// Account hisob (statik jadvaldan)
type Account struct {
	Username string
	Password string
	Role     Role
}

// Session joriy foydalanuvchi sessiyasi
type Session struct {
	ID        string
	Username  string
	Role      Role
	LoginTime time.Time
}

// Active sessiya ochiqligini tekshirish
func (s Session) Active() bool {
	return s.ID != ""
}
