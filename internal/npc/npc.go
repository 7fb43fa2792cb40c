// Package npc models political factions: their relationship to the
// player, parliamentary seats, and ally coalitions.
package npc

import (
	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
)

// NPC is a political faction with a scalar relationship to the player.
type NPC struct {
	Id           ids.Id
	Name         string
	Relationship float32
	Seats        int
	Locked       bool
}

func (n *NPC) GetId() ids.Id { return n.Id }

// Band returns the NPC's discrete relationship band.
func (n *NPC) Band() eventdsl.NPCBand {
	return eventdsl.BandOf(n.Relationship)
}

// IsAlly reports whether the NPC currently sits in the Ally band.
func (n *NPC) IsAlly() bool {
	return n.Band() == eventdsl.BandAlly
}

// CoalitionSeats sums the parliamentary seats of every unlocked Ally NPC.
func CoalitionSeats(npcs []*NPC) int {
	total := 0
	for _, n := range npcs {
		if !n.Locked && n.IsAlly() {
			total += n.Seats
		}
	}
	return total
}
