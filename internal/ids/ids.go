// Package ids provides the identifier type shared by every entity in the
// simulation and an ordered, id-indexed collection built on top of it.
package ids

import "github.com/google/uuid"

// Id uniquely identifies an entity (a process, project, region, NPC, or
// event) for the lifetime of a world.
type Id uuid.UUID

// New generates a fresh random Id.
func New() Id {
	return Id(uuid.New())
}

// Nil is the zero Id, used to mean "no id" in optional fields.
var Nil = Id(uuid.Nil)

func (id Id) String() string {
	return uuid.UUID(id).String()
}

// MarshalYAML renders the Id as its string form.
func (id Id) MarshalYAML() (interface{}, error) {
	return id.String(), nil
}

// UnmarshalYAML parses the Id from its string form.
func (id *Id) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*id = Id(parsed)
	return nil
}

// ParseId parses s as an Id, returning an error if it is not a valid uuid.
func ParseId(s string) (Id, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return Id(u), nil
}
