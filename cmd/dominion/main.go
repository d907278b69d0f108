// Command dominion runs the agent/mission simulation and inspects its
// saves.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/dominion/internal/config"
	"github.com/talgya/dominion/internal/content"
	"github.com/talgya/dominion/internal/galaxy"
	"github.com/talgya/dominion/internal/game"
	"github.com/talgya/dominion/internal/personnel"
	"github.com/talgya/dominion/internal/persistence"
)

var configPath string

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:   "dominion",
		Short: "Turn-based agent and mission simulation",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to dominion.yaml")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation for the configured number of turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			resume, _ := cmd.Flags().GetBool("resume")
			return run(resume)
		},
	}
	runCmd.Flags().Bool("resume", false, "resume from the most recent save")

	savesCmd := &cobra.Command{
		Use:   "saves",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSaves()
		},
	}

	root.AddCommand(runCmd, savesCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(resume bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755)
	store, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open save store: %w", err)
	}
	defer store.Close()

	gen := galaxy.DefaultGenConfig()
	gen.Width = cfg.Galaxy.Width
	gen.Height = cfg.Galaxy.Height
	gen.Density = cfg.Galaxy.Density
	gen.Seed = cfg.Seed
	field := galaxy.Generate(gen)
	slog.Info("galaxy generated", "stars", len(field.Stars))

	rng := rand.New(rand.NewSource(cfg.Seed))
	civs := seedCivilizations(field, rng)
	g := game.NewGame(civs)

	profiles, err := loadProfiles(cfg, rng)
	if err != nil {
		return err
	}

	poolCfg := personnel.PoolConfig{
		MaxActiveAgentsPerEmpire:   cfg.Pool.MaxActiveAgentsPerEmpire,
		MinTurnsBetweenRecruitment: cfg.Pool.MinTurnsBetweenRecruitment,
	}
	var managers []*personnel.Manager
	for _, civ := range civs {
		m, err := personnel.NewManager(civ, profiles, poolCfg, cfg.Seed)
		if err != nil {
			return err
		}
		managers = append(managers, m)
		g.AddUpdater(m.Pool)
		g.AddListener(m)
	}

	if resume {
		if blob, info, err := store.LoadLatest(); err == nil {
			if err := personnel.DecodeSnapshot(blob, g, managers); err != nil {
				return fmt.Errorf("restore save: %w", err)
			}
			slog.Info("save restored", "slot", info.Name, "turn", info.Turn)
		} else {
			slog.Info("no save to resume, starting fresh")
		}
	}

	endTurn := g.Turn + cfg.Turns
	for g.Turn < endTurn {
		g.AdvanceTurn()
		scriptedEvents(g, managers)

		if g.Turn%10 == 0 {
			report(g, managers)
		}
	}

	blob, err := personnel.EncodeSnapshot(g, managers)
	if err != nil {
		return err
	}
	if _, err := store.SaveSnapshot("autosave", g.Turn, blob); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// scriptedEvents drives a small demonstration: the first civilization
// sends an envoy to the second once it has an agent, and war breaks
// out later to force the recall.
func scriptedEvents(g *game.Game, managers []*personnel.Manager) {
	if len(managers) < 2 {
		return
	}
	first, second := managers[0], managers[1]

	if g.Turn == 25 {
		for _, a := range first.Agents.All() {
			if a.Status() != personnel.StatusUnassigned {
				continue
			}
			envoy, err := personnel.NewDiplomaticEnvoyMission(first, second.Civ.ID, g.Turn)
			if err != nil {
				slog.Error("envoy mission failed", "error", err)
				return
			}
			if err := envoy.Assign(a); err != nil {
				slog.Warn("envoy assignment rejected", "error", err)
				return
			}
			if err := envoy.Begin(g); err != nil {
				slog.Warn("envoy could not depart", "error", err)
				return
			}
			slog.Info("envoy dispatched",
				"agent", a.DisplayName(),
				"from", first.Civ.Name,
				"to", second.Civ.Name,
			)
			return
		}
	}

	if g.Turn == 45 {
		g.Diplomacy.DeclareWar(first.Civ.ID, second.Civ.ID)
		slog.Info("war declared", "between", first.Civ.Name, "and", second.Civ.Name)
	}
}

func report(g *game.Game, managers []*personnel.Manager) {
	for _, m := range managers {
		slog.Info("empire report",
			"turn", g.Turn,
			"civ", m.Civ.Name,
			"agents", m.Agents.Len(),
			"scheduled", len(m.Pool.FutureAgents),
		)
		for _, e := range m.SitRep.Recent(3) {
			slog.Info("sitrep", "civ", m.Civ.Name, "turn_label", e.TurnLabel(), "entry", e.Summary)
		}
	}
}

func seedCivilizations(field *galaxy.Starfield, rng *rand.Rand) []*game.Civilization {
	names := []string{"Terran Concordat", "Vulqar Ascendancy", "Meridian Combine"}
	seats := field.SpreadHomeworlds(len(names), rng)

	var civs []*game.Civilization
	for i, name := range names {
		seat := galaxy.Sector{}
		if i < len(seats) {
			seat = seats[i]
		}
		civ := &game.Civilization{
			ID:               game.CivID(i + 1),
			Name:             name,
			SeatOfGovernment: seat,
			ShipDesigns: []game.ShipDesign{
				{Name: "Courier", Speed: 2, MinPropulsion: 0},
				{Name: "Fast Courier", Speed: 4, MinPropulsion: 3},
			},
		}
		for f := game.TechField(0); f < game.NumTechFields; f++ {
			civ.Research.SetTechLevel(f, 1+rng.Intn(3))
		}
		civs = append(civs, civ)
	}
	return civs
}

func loadProfiles(cfg *config.Config, rng *rand.Rand) (*personnel.ProfileDatabase, error) {
	if _, err := os.Stat(cfg.ProfilesPath); err == nil {
		return content.LoadProfileDatabase(cfg.ProfilesPath, rng)
	}
	slog.Info("no profile content file, using built-in profiles", "path", cfg.ProfilesPath)
	return content.ParseProfileDatabase([]byte(builtinProfiles), rng)
}

func listSaves() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	store, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open save store: %w", err)
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("no saves")
		return nil
	}
	for _, s := range saves {
		fmt.Printf("%-36s  %-12s  turn %-5d  %s\n",
			s.ID, s.Name, s.Turn, humanize.Time(s.CreatedAt))
	}
	return nil
}

// builtinProfiles keeps the demo playable without content files on
// disk.
const builtinProfiles = `
civilizations:
  - id: 1
    profiles:
      - name: kess
        display_name: "Envoy Kess"
        gender: female
        natural_skills: [charisma, empathy, deception]
        min_tech_level: 0
        max_tech_level: 4
      - name: draven
        display_name: "Operative Draven"
        gender: male
        natural_skills: [stealth, deception, combat]
        min_tech_level: 1
        max_tech_level: 6
      - name: solenne
        display_name: "Commander Solenne"
        gender: female
        natural_skills: [leadership, combat, charisma]
        min_tech_level: 2
        max_tech_level: 8
  - id: 2
    profiles:
      - name: tyrel
        display_name: "Legate Tyrel"
        gender: male
        natural_skills: [leadership, charisma, empathy]
        min_tech_level: 0
        max_tech_level: 5
      - name: ossa
        display_name: "Shadow Ossa"
        gender: female
        natural_skills: [stealth, combat, deception]
        min_tech_level: 1
        max_tech_level: 7
  - id: 3
    profiles:
      - name: brint
        display_name: "Broker Brint"
        gender: male
        natural_skills: [deception, charisma, leadership]
        min_tech_level: 0
        max_tech_level: 6
`
