package entities

// Built-in ownership type names.
const (
	OwnershipTechnicalOwner = "TECHNICAL_OWNER"
	OwnershipBusinessOwner  = "BUSINESS_OWNER"
	OwnershipDataSteward    = "DATA_STEWARD"
	OwnershipNone           = "NONE"
)

// DefaultOwnershipTypes are seeded when a catalog is initialized.
// These cannot be removed by users.
var DefaultOwnershipTypes = []OwnershipType{
	{
		Name:        OwnershipTechnicalOwner,
		Description: "Involved in the production, maintenance, or distribution of the asset",
	},
	{
		Name:        OwnershipBusinessOwner,
		Description: "Principal stakeholder or domain expert associated with the asset",
	},
	{
		Name:        OwnershipDataSteward,
		Description: "Responsible for governance of the asset",
	},
	{
		Name:        OwnershipNone,
		Description: "No specific ownership category",
	},
}

// DefaultOwnershipTypeNames returns just the names of default ownership types.
func DefaultOwnershipTypeNames() []string {
	names := make([]string, len(DefaultOwnershipTypes))
	for i, t := range DefaultOwnershipTypes {
		names[i] = t.Name
	}
	return names
}

// IsDefaultOwnershipType checks if an ownership type is built in.
func IsDefaultOwnershipType(name string) bool {
	for _, t := range DefaultOwnershipTypes {
		if t.Name == name {
			return true
		}
	}
	return false
}
