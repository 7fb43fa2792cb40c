// Package content loads and saves the declarative world description the
// engine is initialized from: regions, processes, projects, industries,
// NPCs, and events, plus the world's starting coefficients. Content
// authoring itself (the editor that produces a bundle) is out of scope;
// this package only consumes and produces the bundle document.
package content

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"halfearth/internal/eventpool"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/npc"
	"halfearth/internal/persist"
	"halfearth/internal/process"
	"halfearth/internal/project"
	"halfearth/internal/region"
	"halfearth/internal/state"
)

// Bundle is the wire document: every durable field needed to reconstruct a
// State. Caches and derived fields (habitability penalty, produced
// amounts, demand totals) are never serialized — they are recomputed by
// the first StepYear call, per the engine's "reconstructed from
// declarative content" contract.
type Bundle struct {
	Year int `yaml:"year"`

	StartingResources kinds.ResourceMap   `yaml:"starting_resources"`
	PerCapitaDemand   [4]kinds.OutputMap  `yaml:"per_capita_demand"`
	ProtectedLandPct  float32             `yaml:"protected_land_pct"`

	Regions    []*region.Region     `yaml:"regions"`
	Processes  []*process.Process   `yaml:"processes"`
	Projects   []*project.Project   `yaml:"projects"`
	Industries []*region.Industry   `yaml:"industries"`
	NPCs       []*npc.NPC           `yaml:"npcs"`
	Events     []*eventpool.Event   `yaml:"events"`
}

// Load parses a YAML content bundle from r and wires it into a fresh State.
func Load(r io.Reader) (*state.State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("content: read bundle: %w", err)
	}
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("content: parse bundle: %w", err)
	}
	return b.Build(), nil
}

// Build wires a Bundle's entities into a fresh State.
func (b *Bundle) Build() *state.State {
	s := state.New()

	s.World.Year = b.Year
	s.World.StartingResources = b.StartingResources
	s.World.PerCapitaDemand = b.PerCapitaDemand
	s.ProtectedLandPct = b.ProtectedLandPct
	s.Resources = b.StartingResources

	var regionIds []ids.Id
	for _, r := range b.Regions {
		s.Regions.Add(r)
		regionIds = append(regionIds, r.Id)
	}
	s.World.SetRegionIds(regionIds)

	for _, p := range b.Processes {
		s.Processes.Add(p)
	}
	for _, p := range b.Projects {
		s.Projects.Add(p)
	}
	for _, i := range b.Industries {
		s.Industries.Add(i)
	}
	for _, n := range b.NPCs {
		s.NPCs.Add(n)
	}
	for _, e := range b.Events {
		s.EventPool.Events.Add(e)
	}

	return s
}

// Save projects a State back into a Bundle, in each Collection's
// iteration order, so a subsequent Load reproduces the same world.
func Save(s *state.State) *Bundle {
	b := &Bundle{
		Year:              s.World.Year,
		StartingResources: s.World.StartingResources,
		PerCapitaDemand:   s.World.PerCapitaDemand,
		ProtectedLandPct:  s.ProtectedLandPct,
	}
	s.Regions.Each(func(r *region.Region) bool {
		b.Regions = append(b.Regions, r)
		return true
	})
	s.Processes.Each(func(p *process.Process) bool {
		b.Processes = append(b.Processes, p)
		return true
	})
	s.Projects.Each(func(p *project.Project) bool {
		b.Projects = append(b.Projects, p)
		return true
	})
	s.Industries.Each(func(i *region.Industry) bool {
		b.Industries = append(b.Industries, i)
		return true
	})
	s.NPCs.Each(func(n *npc.NPC) bool {
		b.NPCs = append(b.NPCs, n)
		return true
	})
	s.EventPool.Events.Each(func(e *eventpool.Event) bool {
		b.Events = append(b.Events, e)
		return true
	})
	return b
}

// Marshal renders the bundle as YAML.
func (b *Bundle) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("content: marshal bundle: %w", err)
	}
	return out, nil
}

// SaveDocument renders s as a save document: the YAML bundle compressed
// and hashed by the persist collaborator, ready to write to disk.
func SaveDocument(s *state.State) ([]byte, error) {
	data, err := Save(s).Marshal()
	if err != nil {
		return nil, err
	}
	doc, err := persist.Save(data)
	if err != nil {
		return nil, fmt.Errorf("content: save document: %w", err)
	}
	return doc, nil
}

// LoadDocument parses a save document produced by SaveDocument, verifying
// its hash before wiring the bundle into a fresh State.
func LoadDocument(doc []byte) (*state.State, error) {
	data, err := persist.Load(doc)
	if err != nil {
		return nil, fmt.Errorf("content: load document: %w", err)
	}
	return Load(bytes.NewReader(data))
}
