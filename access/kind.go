package access

// Kind identifies the type of a shareable entity.
type Kind string

const (
	KindDevice    Kind = "device"
	KindBeacon    Kind = "beacon"
	KindDashboard Kind = "dashboard"
)

// Valid reports whether the kind is a known shareable entity type.
func (k Kind) Valid() bool {
	switch k {
	case KindDevice, KindBeacon, KindDashboard:
		return true
	}
	return false
}

// AssignmentTable returns the table holding user assignments for this
// kind. One table per kind keeps a user's full set of assignments for
// a type retrievable with a single partition query.
func (k Kind) AssignmentTable() string {
	return "hearth_assigned_" + string(k) + "s"
}
