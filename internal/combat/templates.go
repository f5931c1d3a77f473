package combat

// ClassTemplate is the factory input for one hull class: base stats and the
// starter fit. The surrounding game decides where templates come from; the
// builtins below cover the stock classes and make headless battles possible
// without any external data.
type ClassTemplate struct {
	Class         string
	Large         bool
	Hull          float64
	ShieldCap     float64 // per arc
	ShieldRegen   float64
	BaseMP        int
	SensorRange   int
	Crew          int
	CommandRating int
	Armor         float64
	Deflector     Deflector
	Weapons       []WeaponMount
	Torpedoes     []TorpedoMount
}

// Build instantiates combat state from the template. Weapon slices are copied
// so ships never share mount state.
func (t ClassTemplate) Build(id ShipID, name string, faction Faction, pos Hex, facing Facing) *Ship {
	shields := make(map[Arc]float64, 4)
	maxShields := make(map[Arc]float64, 4)
	for _, arc := range AllArcs {
		shields[arc] = t.ShieldCap
		maxShields[arc] = t.ShieldCap
	}
	weapons := make([]WeaponMount, len(t.Weapons))
	copy(weapons, t.Weapons)
	torpedoes := make([]TorpedoMount, len(t.Torpedoes))
	copy(torpedoes, t.Torpedoes)

	return &Ship{
		ID:      id,
		Name:    name,
		Class:   t.Class,
		Faction: faction,
		Pos:     pos,
		Facing:  facing,
		Large:   t.Large,

		Hull:        t.Hull,
		MaxHull:     t.Hull,
		Armor:       t.Armor,
		Shields:     shields,
		MaxShields:  maxShields,
		ShieldRegen: t.ShieldRegen,

		BaseMP:    t.BaseMP,
		Power:     BalancedPower(),
		PowerPool: DefaultPowerPool,

		Weapons:   weapons,
		Torpedoes: torpedoes,

		BaseSensorRange: t.SensorRange,
		Deflector:       t.Deflector,

		Systems: NewSystemHealth(),

		Crew:    t.Crew,
		MaxCrew: t.Crew,
		Morale:  DefaultMorale,
		Skill:   Regular,

		CommandRating: t.CommandRating,
	}
}

func allArcMount(name string, typ EnergyWeaponType, mark int) WeaponMount {
	return WeaponMount{Name: name, Type: typ, Mark: mark, Arcs: []Arc{ArcFore, ArcAft, ArcPort, ArcStarboard}}
}

var builtinTemplates = map[string]ClassTemplate{
	"Daedalus": {
		Class: "Daedalus", Hull: 80, ShieldCap: 50, ShieldRegen: 8,
		BaseMP: 4, SensorRange: 5, Crew: 120, CommandRating: 3,
		Deflector: Deflector{Mark: 2},
		Weapons: []WeaponMount{
			allArcMount("Phaser Array", Phaser, 2),
		},
		Torpedoes: []TorpedoMount{
			{Name: "Forward Tube", Type: Photon, Mark: 1, Arcs: []Arc{ArcFore}, Ammo: 20, MaxAmmo: 20},
		},
	},
	"Oberth": {
		Class: "Oberth", Hull: 70, ShieldCap: 70, ShieldRegen: 10,
		BaseMP: 4, SensorRange: 8, Crew: 80, CommandRating: 4,
		Deflector: Deflector{Mark: 6},
		Weapons: []WeaponMount{
			allArcMount("Phaser Array", Phaser, 3),
		},
	},
	"Miranda": {
		Class: "Miranda", Hull: 120, ShieldCap: 80, ShieldRegen: 10,
		BaseMP: 5, SensorRange: 6, Crew: 220, CommandRating: 5,
		Deflector: Deflector{Mark: 4},
		Weapons: []WeaponMount{
			allArcMount("Dorsal Phaser Array", Phaser, 4),
			allArcMount("Ventral Phaser Array", Phaser, 4),
			{Name: "Roll Bar Phaser Bank", Type: Phaser, Mark: 4, Arcs: []Arc{ArcFore, ArcPort, ArcStarboard}},
		},
		Torpedoes: []TorpedoMount{
			{Name: "Roll Bar Tube", Type: Photon, Mark: 4, Arcs: []Arc{ArcFore, ArcAft}, Ammo: 40, MaxAmmo: 40},
		},
	},
	"Galaxy": {
		Class: "Galaxy", Large: true, Hull: 300, ShieldCap: 150, ShieldRegen: 15,
		BaseMP: 4, SensorRange: 9, Crew: 1000, CommandRating: 8, Armor: 10,
		Deflector: Deflector{Mark: 8},
		Weapons: []WeaponMount{
			allArcMount("Dorsal Phaser Array", Phaser, 8),
			allArcMount("Ventral Phaser Array", Phaser, 8),
		},
		Torpedoes: []TorpedoMount{
			{Name: "Forward Torpedo Bay", Type: Photon, Mark: 6, Arcs: []Arc{ArcFore}, Ammo: 100, MaxAmmo: 100},
			{Name: "Aft Torpedo Bay", Type: Photon, Mark: 6, Arcs: []Arc{ArcAft}, Ammo: 50, MaxAmmo: 50},
		},
	},
	"Raider": {
		Class: "Raider", Hull: 90, ShieldCap: 60, ShieldRegen: 8,
		BaseMP: 6, SensorRange: 5, Crew: 60, CommandRating: 4,
		Deflector: Deflector{Mark: 2},
		Weapons: []WeaponMount{
			{Name: "Forward Disruptor", Type: Disruptor, Mark: 3, Arcs: []Arc{ArcFore, ArcPort, ArcStarboard}},
			{Name: "Aft Disruptor", Type: Disruptor, Mark: 2, Arcs: []Arc{ArcAft}},
		},
		Torpedoes: []TorpedoMount{
			{Name: "Plasma Launcher", Type: PlasmaTorpedo, Mark: 2, Arcs: []Arc{ArcFore}, Ammo: 15, MaxAmmo: 15},
		},
	},
}

// TemplateFor looks up a builtin class template by name.
func TemplateFor(class string) (ClassTemplate, bool) {
	t, ok := builtinTemplates[class]
	return t, ok
}

// ClassNames lists the builtin classes in no particular order.
func ClassNames() []string {
	out := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		out = append(out, name)
	}
	return out
}
