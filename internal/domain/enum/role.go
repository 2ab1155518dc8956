package enum

import "database/sql/driver"

// Role is the closed set of caller roles. A scoped user operates inside their
// home shop only; a privileged user may select any shop or the aggregate view.
type Role string

const (
	RoleScoped     Role = "scoped"
	RolePrivileged Role = "privileged"
)

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleScoped || r == RolePrivileged
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleScoped
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}
