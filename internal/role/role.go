package role

import (
	"errors"
	"fmt"
)

// 用户角色编码
const (
	RoleAdmin = 0
	RoleStaff = 1
	RoleUser  = 2
)

// 账户状态编码
const (
	StatusInactive = 0
	StatusNew      = 1
	StatusActive   = 2
)

// ErrUndefinedCode indicates a role or status code outside the defined
// tables reached the classifier. That is a configuration defect, not a
// runtime condition, so callers should fail loudly.
var ErrUndefinedCode = errors.New("undefined classification code")

var roleLabels = map[int]string{
	RoleAdmin: "admin",
	RoleStaff: "staff",
	RoleUser:  "user",
}

var statusLabels = map[int]string{
	StatusInactive: "inactive",
	StatusNew:      "new",
	StatusActive:   "active",
}

// RoleLabel resolves a role code to its display label.
func RoleLabel(code int) (string, error) {
	label, ok := roleLabels[code]
	if !ok {
		return "", fmt.Errorf("role code %d: %w", code, ErrUndefinedCode)
	}
	return label, nil
}

// StatusLabel resolves a status code to its display label.
func StatusLabel(code int) (string, error) {
	label, ok := statusLabels[code]
	if !ok {
		return "", fmt.Errorf("status code %d: %w", code, ErrUndefinedCode)
	}
	return label, nil
}

// IsAdmin reports whether the role code is the admin constant.
func IsAdmin(code int) bool {
	return code == RoleAdmin
}

// ValidRoleCode reports whether the code is in the role table.
func ValidRoleCode(code int) bool {
	_, ok := roleLabels[code]
	return ok
}

// ValidStatusCode reports whether the code is in the status table.
func ValidStatusCode(code int) bool {
	_, ok := statusLabels[code]
	return ok
}
