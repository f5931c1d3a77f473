package server

import (
	"encoding/json"

	"HexFleetCommand/internal/combat"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type moveMsg struct {
	Direction string `json:"direction"` // forward | backward
}

type turnMsg struct {
	Direction string `json:"direction"` // left | right
}

type targetMsg struct {
	Targets []string `json:"targets"`
}

type fireMsg struct {
	Mount  string `json:"mount,omitempty"`  // empty fires everything that bears
	Target string `json:"target,omitempty"` // required with a named mount
}

type powerMsg struct {
	Engines int `json:"engines"`
	Shields int `json:"shields"`
	Weapons int `json:"weapons"`
}

type repairMsg struct {
	System string `json:"system"`
}

type hexDTO struct {
	Q int `json:"q"`
	R int `json:"r"`
}

type weaponDTO struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Mark  int      `json:"mark"`
	Arcs  []string `json:"arcs"`
	Ready bool     `json:"ready"`
}

type torpedoDTO struct {
	weaponDTO
	Ammo     int `json:"ammo"`
	MaxAmmo  int `json:"maxAmmo"`
	Cooldown int `json:"cooldown"`
}

type shipDTO struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Class       string                 `json:"class"`
	Faction     string                 `json:"faction"`
	Pos         hexDTO                 `json:"pos"`
	Facing      int                    `json:"facing"`
	Hull        float64                `json:"hull"`
	MaxHull     float64                `json:"maxHull"`
	Shields     map[string]float64     `json:"shields"`
	MaxShields  map[string]float64     `json:"maxShields"`
	Systems     map[string]float64     `json:"systems"`
	Crew        int                    `json:"crew"`
	MaxCrew     int                    `json:"maxCrew"`
	Morale      float64                `json:"morale"`
	Power       combat.PowerAllocation `json:"power"`
	SensorRange int                    `json:"sensorRange"`
	Weapons     []weaponDTO            `json:"weapons"`
	Torpedoes   []torpedoDTO           `json:"torpedoes"`
	Disabled    bool                   `json:"disabled"`
	Destroyed   bool                   `json:"destroyed"`
	Retreated   bool                   `json:"retreated"`
	Self        bool                   `json:"self"`
}

// stateMsg is the full snapshot pushed after every accepted command, plus the
// log entries the client has not seen yet.
type stateMsg struct {
	Type     string         `json:"type"`
	Round    int            `json:"round"`
	Phase    string         `json:"phase"`
	Active   string         `json:"active"`
	Finished bool           `json:"finished"`
	Winner   string         `json:"winner,omitempty"`
	Ships    []shipDTO      `json:"ships"`
	Events   []combat.Event `json:"events,omitempty"`
	Movement int            `json:"movement"`
}

type errorMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func shipToDTO(s *combat.Ship, self bool) shipDTO {
	shields := make(map[string]float64, 4)
	maxShields := make(map[string]float64, 4)
	for _, arc := range combat.AllArcs {
		shields[string(arc)] = s.Shields[arc]
		maxShields[string(arc)] = s.MaxShields[arc]
	}
	systems := make(map[string]float64, len(combat.AllSystems))
	for _, sys := range combat.AllSystems {
		systems[string(sys)] = s.Systems.Get(sys)
	}
	weapons := make([]weaponDTO, 0, len(s.Weapons))
	for i := range s.Weapons {
		w := &s.Weapons[i]
		weapons = append(weapons, weaponDTO{
			Name: w.Name, Type: string(w.Type), Mark: w.Mark,
			Arcs: arcNames(w.Arcs), Ready: w.Ready(),
		})
	}
	torpedoes := make([]torpedoDTO, 0, len(s.Torpedoes))
	for i := range s.Torpedoes {
		tm := &s.Torpedoes[i]
		torpedoes = append(torpedoes, torpedoDTO{
			weaponDTO: weaponDTO{
				Name: tm.Name, Type: string(tm.Type), Mark: tm.Mark,
				Arcs: arcNames(tm.Arcs), Ready: tm.Ready(),
			},
			Ammo: tm.Ammo, MaxAmmo: tm.MaxAmmo, Cooldown: tm.Cooldown,
		})
	}
	return shipDTO{
		ID:          string(s.ID),
		Name:        s.Name,
		Class:       s.Class,
		Faction:     string(s.Faction),
		Pos:         hexDTO{Q: s.Pos.Q, R: s.Pos.R},
		Facing:      int(s.Facing),
		Hull:        s.Hull,
		MaxHull:     s.MaxHull,
		Shields:     shields,
		MaxShields:  maxShields,
		Systems:     systems,
		Crew:        s.Crew,
		MaxCrew:     s.MaxCrew,
		Morale:      s.Morale,
		Power:       s.Power,
		SensorRange: s.EffectiveSensorRange(),
		Weapons:     weapons,
		Torpedoes:   torpedoes,
		Disabled:    s.Disabled,
		Destroyed:   s.Destroyed,
		Retreated:   s.Retreated,
		Self:        self,
	}
}

func arcNames(arcs []combat.Arc) []string {
	out := make([]string, 0, len(arcs))
	for _, a := range arcs {
		out = append(out, string(a))
	}
	return out
}
