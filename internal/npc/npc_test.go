package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
	"halfearth/internal/npc"
)

func TestCoalitionSeats(t *testing.T) {
	ally := &npc.NPC{Id: ids.New(), Relationship: 10, Seats: 5}
	lockedAlly := &npc.NPC{Id: ids.New(), Relationship: 10, Seats: 7, Locked: true}
	neutral := &npc.NPC{Id: ids.New(), Relationship: 0, Seats: 3}

	total := npc.CoalitionSeats([]*npc.NPC{ally, lockedAlly, neutral})
	assert.Equal(t, 5, total)
}

func TestBandThresholds(t *testing.T) {
	n := &npc.NPC{Relationship: -3}
	assert.Equal(t, eventdsl.BandNemesis, n.Band())
}
