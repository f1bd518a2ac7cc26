package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// previewFile is the on-disk roster and results format.
type previewFile struct {
	Players  []models.Player       `json:"players"`
	Courts   []models.Court        `json:"courts"`
	Matches  []models.Match        `json:"matches,omitempty"`
	Specials []models.MatchSpecial `json:"specials,omitempty"`
}

func loadPreviewFile(path string) (*previewFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f previewFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &f, nil
}

func (f *previewFile) rosters() []brackets.GroupRoster {
	rosters := make([]brackets.GroupRoster, 0, len(models.AllGroups))
	for _, g := range models.AllGroups {
		r := brackets.GroupRoster{Group: g}
		for _, p := range f.Players {
			if p.Group == g {
				r.Players = append(r.Players, p)
			}
		}
		for _, c := range f.Courts {
			if c.Group == g {
				r.Courts = append(r.Courts, c)
			}
		}
		rosters = append(rosters, r)
	}
	return rosters
}

func (f *previewFile) names() map[int]string {
	names := make(map[int]string, len(f.Players))
	for _, p := range f.Players {
		names[p.ID] = p.Name
	}
	return names
}

type ScheduleCmd struct {
	Roster string `arg:"" type:"existingfile" help:"roster JSON with players and courts"`
	Start  int    `help:"first match number" default:"1"`
}

func (c *ScheduleCmd) Run(logger *slog.Logger) error {
	f, err := loadPreviewFile(c.Roster)
	if err != nil {
		return err
	}
	matches, err := brackets.BuildTournamentSchedule(f.rosters(), c.Start)
	if err != nil {
		return err
	}
	logger.Debug("schedule built", slog.Int("matches", len(matches)))
	renderSchedule(os.Stdout, "Rounds 1-2", matches, f.names())
	return nil
}

type Round3Cmd struct {
	Results string `arg:"" type:"existingfile" help:"results JSON with players, courts, matches and specials"`
}

func (c *Round3Cmd) Run(logger *slog.Logger) error {
	f, err := loadPreviewFile(c.Results)
	if err != nil {
		return err
	}
	report, matches, err := previewRound3(f)
	renderReadiness(os.Stdout, report)
	if err != nil {
		return err
	}
	logger.Debug("round 3 built", slog.Int("matches", len(matches)))
	renderSchedule(os.Stdout, "Round 3", matches, f.names())
	return nil
}

// previewRound3 evaluates the gate as an organizer of an active tournament and,
// when it passes, flights both groups numbered after the existing matches.
func previewRound3(f *previewFile) (brackets.ReadinessReport, []brackets.ScheduledMatch, error) {
	report := brackets.EvaluateReadiness(brackets.ReadinessSnapshot{
		TournamentStatus: models.StatusActive,
		Matches:          f.Matches,
		Role:             models.RoleOrganizer,
	})
	if err := report.Err(); err != nil {
		return report, nil, err
	}

	stats := brackets.AggregateRoundStats(f.Matches, f.Specials)
	var all []brackets.ScheduledMatch
	for _, r := range f.rosters() {
		matches, err := brackets.BuildRound3(brackets.Round3Params{
			Group:  r.Group,
			Lines:  brackets.CombineRounds(brackets.SeedPlayers(r.Players), stats, 1, 2),
			Courts: r.Courts,
		})
		if err != nil {
			return report, nil, err
		}
		all = append(all, matches...)
	}

	last := 0
	for _, m := range f.Matches {
		last = max(last, m.MatchNumber)
	}
	return report, brackets.NumberMatches(all, last+1), nil
}

type StandingsCmd struct {
	Results string `arg:"" type:"existingfile" help:"results JSON with players, matches and specials"`
	Round   int    `help:"restrict the bonus ranking to one round (0 = all rounds)" default:"0"`
}

func (c *StandingsCmd) Run(logger *slog.Logger) error {
	f, err := loadPreviewFile(c.Results)
	if err != nil {
		return err
	}
	var round *int
	if c.Round != 0 {
		if c.Round < 1 || c.Round > brackets.Round3Number {
			return fmt.Errorf("round must be between 1 and %d", brackets.Round3Number)
		}
		round = &c.Round
	}
	renderStandings(os.Stdout, f, round)
	return nil
}

func renderSchedule(w io.Writer, title string, matches []brackets.ScheduledMatch, names map[int]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Group", "Round", "Slot", "Court", "Team 1", "Team 2").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range matches {
		t.Row(
			strconv.Itoa(m.MatchNumber),
			string(m.Group),
			strconv.Itoa(m.RoundNumber),
			strconv.Itoa(m.RoundWithinGroup),
			m.Court.Name,
			names[m.Team1[0]]+" & "+names[m.Team1[1]],
			names[m.Team2[0]]+" & "+names[m.Team2[1]],
		)
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, t.Render())
}

func renderReadiness(w io.Writer, report brackets.ReadinessReport) {
	for _, rp := range report.Rounds {
		fmt.Fprintf(w, "round %d: %d/%d valid\n", rp.Round, rp.ValidComplete, rp.Total)
	}
	line := fmt.Sprintf("%s: %s", report.State, report.Message)
	if !report.IsReady {
		line = alertStyle.Render(line)
	}
	fmt.Fprintln(w, line)
}

func renderStandings(w io.Writer, f *previewFile, round *int) {
	stats := brackets.AggregateRoundStats(f.Matches, f.Specials)
	for _, r := range f.rosters() {
		st := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Pos", "Player", "R1", "R2", "R3", "Games", "Specials", "Decided by")
		for _, e := range brackets.CalculateStandings(r.Players, stats) {
			st.Row(
				strconv.Itoa(e.Position),
				e.PlayerName,
				strconv.Itoa(e.Round(1).GamesWon),
				strconv.Itoa(e.Round(2).GamesWon),
				strconv.Itoa(e.Round(3).GamesWon),
				strconv.Itoa(e.TotalGamesWon),
				strconv.Itoa(e.TotalSpecials),
				string(e.TieBreakerUsed),
			)
		}
		fmt.Fprintln(w, titleStyle.Render("Standings "+string(r.Group)))
		fmt.Fprintln(w, st.Render())

		for _, e := range brackets.RankSpecials(brackets.SpecialsTotals(r.Players, stats, round)) {
			if e.Title != "" {
				fmt.Fprintf(w, "%s: %s (%d)\n", e.Title, e.PlayerName, e.TotalSpecials)
			}
		}
	}
}
