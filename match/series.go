package match

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"briscola/game"
	"briscola/player"
)

// Series plays a number of games between the same two players, swapping
// seats every game so each side leads the first trick equally often.
type Series struct {
	Players  [2]player.Player
	Games    int
	RNG      *rand.Rand
	Renderer Renderer
	Reporter Reporter
	Log      *log.Logger
}

// SeriesResult tallies a series by player, not by seat.
type SeriesResult struct {
	Names  [2]string
	Games  int
	Wins   [2]int
	Draws  int
	Points [2]int
	// Margin sums each player's score minus the opponent's
	Margin [2]int
}

// AveragePoints returns player i's mean score per game
func (r SeriesResult) AveragePoints(i int) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Points[i]) / float64(r.Games)
}

// AverageMargin returns player i's mean winning margin per game
func (r SeriesResult) AverageMargin(i int) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Margin[i]) / float64(r.Games)
}

func (r SeriesResult) String() string {
	return fmt.Sprintf("%d games: %s %d wins (avg %.1f), %s %d wins (avg %.1f), %d draws, margin %+.1f for %s",
		r.Games, r.Names[0], r.Wins[0], r.AveragePoints(0), r.Names[1], r.Wins[1], r.AveragePoints(1), r.Draws,
		r.AverageMargin(0), r.Names[0])
}

// Run plays the series. It stops at the first failed game or when ctx ends,
// returning the tally of the games completed so far.
func (s *Series) Run(ctx context.Context) (SeriesResult, error) {
	res := SeriesResult{Names: [2]string{s.Players[0].Name(), s.Players[1].Name()}}
	rng := s.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	for g := 0; g < s.Games; g++ {
		// seat[i] is the seat player i takes this game
		seat := [2]game.Seat{game.SeatA, game.SeatB}
		if g%2 == 1 {
			seat = [2]game.Seat{game.SeatB, game.SeatA}
		}
		m := New(s.Players[0], s.Players[1])
		if g%2 == 1 {
			m.Players = [2]player.Player{s.Players[1], s.Players[0]}
		}
		m.Renderer, m.Reporter, m.Log = s.Renderer, s.Reporter, s.Log

		result, err := m.Run(ctx, game.NewGame(rng))
		if err != nil {
			return res, fmt.Errorf("game %d: %w", g+1, err)
		}

		res.Games++
		for i := range s.Players {
			res.Points[i] += result.Scores[seat[i]]
			res.Margin[i] += result.Margin(seat[i])
			if result.Winner == seat[i] {
				res.Wins[i]++
			}
		}
		if result.Draw {
			res.Draws++
		}
		if s.Log != nil {
			s.Log.Printf("Series after %d: %s", res.Games, res)
		}
	}
	return res, nil
}
