package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"HexFleetCommand/internal/combat"
	"HexFleetCommand/internal/recorder"
	"HexFleetCommand/internal/server"
)

func main() {
	addr := flag.String("addr", "", "address to listen on (overrides config)")
	configPath := flag.String("config", "configs/combat.json", "path to encounter tuning JSON")
	seed := flag.Int64("seed", 0, "encounter seed (0 picks one per session)")
	headless := flag.Bool("headless", false, "run one AI versus AI encounter and exit")
	rounds := flag.Int("rounds", 0, "round cap override")
	report := flag.String("report", "", "sqlite battle report path (overrides config)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *rounds > 0 {
		cfg.MaxRounds = *rounds
	}
	if *report != "" {
		cfg.ReportPath = *report
	}

	log := newLogger(cfg.LogLevel)

	if *headless {
		if err := runHeadless(cfg, log); err != nil {
			log.Fatal().Err(err).Msg("encounter failed")
		}
		return
	}
	if err := server.StartApp(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// runHeadless pits the configured scenario against itself with both sides
// under AI control, prints the battle log, and reports the outcome.
func runHeadless(cfg server.Config, log zerolog.Logger) error {
	playerTpl, ok := combat.TemplateFor(cfg.PlayerClass)
	if !ok {
		return fmt.Errorf("unknown ship class %q", cfg.PlayerClass)
	}
	enemyTpl, ok := combat.TemplateFor(cfg.EnemyClass)
	if !ok {
		return fmt.Errorf("unknown ship class %q", cfg.EnemyClass)
	}
	count := cfg.EnemyCount
	if count < 1 {
		count = 1
	}

	roster := []*combat.Ship{
		playerTpl.Build("blue-1", "USS "+cfg.PlayerClass, combat.FactionFriendly, combat.Hex{Q: -6, R: 0}, 0),
	}
	ai := map[combat.ShipID]combat.Personality{
		"blue-1": combat.PersonalityPreset("balanced"),
	}
	for i := 0; i < count; i++ {
		id := combat.ShipID(fmt.Sprintf("red-%d", i+1))
		ship := enemyTpl.Build(id, fmt.Sprintf("%s %d", cfg.EnemyClass, i+1), combat.FactionEnemy, combat.Hex{Q: 6, R: -3 * i}, 3)
		roster = append(roster, ship)
		ai[id] = combat.PersonalityPreset(cfg.EnemyPersonality)
	}

	cc := cfg.CombatConfig(log)
	if cc.Seed == 0 {
		cc.Seed = time.Now().UnixNano()
	}
	res, err := combat.NewResolver(roster, ai, cc)
	if err != nil {
		return err
	}

	out := res.Run()

	for _, ev := range res.Events() {
		log.Info().
			Int("round", ev.Round).
			Str("type", string(ev.Type)).
			Str("ship", string(ev.Ship)).
			Str("note", ev.Note).
			Msg("battle log")
	}
	log.Info().
		Str("winner", string(out.Winner)).
		Int("rounds", out.Rounds).
		Strs("survivors", shipNames(out.Survivors)).
		Strs("destroyed", shipNames(out.Destroyed)).
		Msg("encounter over")

	if cfg.ReportPath != "" {
		if err := persistReport(cfg.ReportPath, res, out, log); err != nil {
			return err
		}
	}
	return nil
}

func persistReport(path string, res *combat.Resolver, out combat.Outcome, log zerolog.Logger) error {
	rec, err := recorder.Open(path, log)
	if err != nil {
		return err
	}
	defer rec.Close()
	battle, err := rec.Start(res.Seed())
	if err != nil {
		return err
	}
	if err := battle.Record(res.Events()); err != nil {
		return err
	}
	return battle.Finish(out)
}

func shipNames(ships []*combat.Ship) []string {
	out := make([]string, 0, len(ships))
	for _, s := range ships {
		out = append(out, s.Name)
	}
	return out
}
