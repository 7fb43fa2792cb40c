package region

import (
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// Industry is a non-process consumer/emitter sector (e.g. tourism,
// construction) whose resource draw and byproduct output are tracked
// alongside processes but outside the production planner's allocation:
// industries are not ranked or rationed, only scaled by effects.
type Industry struct {
	Id         ids.Id
	Name       string
	Resources  kinds.ResourceMap
	Byproducts kinds.ByproductMap

	DemandModifier float32
}

func (i *Industry) GetId() ids.Id { return i.Id }
