package valueobject

import "fmt"

// EntityType identifies whether an application is for a vendor or a client.
// The zero value means the applicant has not chosen yet.
type EntityType struct {
	value string
}

var (
	EntityTypeVendor = EntityType{value: "vendor"}
	EntityTypeClient = EntityType{value: "client"}
)

// EntityTypeFromString parses an entity type. An empty string yields the
// zero value.
func EntityTypeFromString(s string) (EntityType, error) {
	switch s {
	case "":
		return EntityType{}, nil
	case "vendor":
		return EntityTypeVendor, nil
	case "client":
		return EntityTypeClient, nil
	default:
		return EntityType{}, fmt.Errorf("invalid entity type: %s", s)
	}
}

func (e EntityType) String() string {
	return e.value
}

func (e EntityType) IsVendor() bool {
	return e == EntityTypeVendor
}

func (e EntityType) IsClient() bool {
	return e == EntityTypeClient
}

// IsZero returns true if no entity type was chosen.
func (e EntityType) IsZero() bool {
	return e.value == ""
}

// Equal checks equality with another EntityType.
func (e EntityType) Equal(other EntityType) bool {
	return e.value == other.value
}
