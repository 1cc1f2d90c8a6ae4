package entity

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// Account holds a registered identity. ConfirmationCode is rotated to a fresh
// random value every time it is successfully consumed, so a code can never be
// replayed. IsSuperuser is an administrative override independent of Role.
type Account struct {
	Base
	Username         string  `db:"username"`
	Email            string  `db:"email"`
	FirstName        *string `db:"first_name"`
	LastName         *string `db:"last_name"`
	Bio              *string `db:"bio"`
	Role             Role    `db:"role"`
	ConfirmationCode string  `db:"confirmation_code"`
	IsSuperuser      bool    `db:"is_superuser"`
}
