package formation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/player-locator/internal/detection"
)

// Team tags one half of the players.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// ErrUnknownTeam is returned by ParseTeam for anything but A or B.
var ErrUnknownTeam = errors.New("unknown team")

// ErrPlayerNotFound is returned when an ID is not among the players.
var ErrPlayerNotFound = errors.New("player not found")

// ParseTeam accepts "A" or "B" in either case.
func ParseTeam(s string) (Team, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return TeamA, nil
	case "B":
		return TeamB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTeam, s)
}

// TeamOf returns the team of a player ID given n expected players.
func TeamOf(id, n int) Team {
	if id <= n/2 {
		return TeamA
	}
	return TeamB
}

// Split partitions players into TeamA and TeamB, keeping input order.
func Split(players []detection.Player, n int) (a, b []detection.Player) {
	a = make([]detection.Player, 0, len(players))
	b = make([]detection.Player, 0, len(players))
	for _, p := range players {
		if TeamOf(p.ID, n) == TeamA {
			a = append(a, p)
		} else {
			b = append(b, p)
		}
	}
	return a, b
}

// Members returns the players of one team.
func Members(players []detection.Player, n int, team Team) []detection.Player {
	a, b := Split(players, n)
	if team == TeamA {
		return a
	}
	return b
}

// FoldHalves returns a copy of players with every TeamB player shifted left
// by half the image width, so both teams share one half-pitch frame.
func FoldHalves(players []detection.Player, n, imageWidth int) []detection.Player {
	shift := float64(imageWidth) / 2
	out := make([]detection.Player, len(players))
	for i, p := range players {
		if TeamOf(p.ID, n) == TeamB {
			p.X -= shift
		}
		out[i] = p
	}
	return out
}

// Edge is a straight segment between two players.
type Edge struct {
	From   int     `json:"from_id"`
	To     int     `json:"to_id"`
	Length float64 `json:"length"`
}

func distance(p, q detection.Player) float64 {
	return floats.Distance([]float64{p.X, p.Y}, []float64{q.X, q.Y}, 2)
}

// CompleteGraph returns an edge for every unordered pair of players, i<j in
// input order.
func CompleteGraph(players []detection.Player) []Edge {
	k := len(players)
	edges := make([]Edge, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			edges = append(edges, Edge{
				From:   players[i].ID,
				To:     players[j].ID,
				Length: distance(players[i], players[j]),
			})
		}
	}
	return edges
}

// DistancesFrom returns an edge from p to each of others, in order.
func DistancesFrom(p detection.Player, others []detection.Player) []Edge {
	edges := make([]Edge, 0, len(others))
	for _, q := range others {
		edges = append(edges, Edge{From: p.ID, To: q.ID, Length: distance(p, q)})
	}
	return edges
}

// Find looks up a player by ID.
func Find(players []detection.Player, id int) (detection.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return detection.Player{}, false
}

// Opponents returns the player with the given ID and every player of the
// other team.
func Opponents(players []detection.Player, id, n int) (detection.Player, []detection.Player, error) {
	p, ok := Find(players, id)
	if !ok {
		return detection.Player{}, nil, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
	}
	a, b := Split(players, n)
	if TeamOf(id, n) == TeamA {
		return p, b, nil
	}
	return p, a, nil
}

// Nearest returns edges sorted by ascending length, keeping at most k.
// k <= 0 keeps all.
func Nearest(edges []Edge, k int) []Edge {
	out := append([]Edge(nil), edges...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length < out[j].Length
		}
		return out[i].To < out[j].To
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
