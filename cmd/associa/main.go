// Command associa is a terminal front end for the daily leaderboard. It goes
// through the same gateway as the game's result screen: the server first,
// local storage when the server cannot be reached.
//
//	associa scores
//	associa submit -nickname Al -score 42
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/internal/client"
	"github.com/robalobadob/associa/internal/config"
	"github.com/robalobadob/associa/internal/leaderboard"
	"github.com/robalobadob/associa/internal/localstore"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		die(err.Error())
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	local := leaderboard.New(localstore.NewRepository(localstore.NewFile(cfg.LocalStorage)))
	gw := client.NewGateway(client.NewRemote(cfg.APIURL, cfg.Timeout), local)
	ctx := context.Background()

	switch os.Args[1] {
	case "scores":
		top, src, err := gw.GetScores(ctx)
		if err != nil {
			die("could not load scores: " + err.Error())
		}
		printBoard(os.Stdout, top, src)

	case "submit":
		fs := flag.NewFlagSet("submit", flag.ExitOnError)
		nickname := fs.String("nickname", "", "player nickname (2–20 characters)")
		score := fs.Int("score", 0, "score (0–100)")
		_ = fs.Parse(os.Args[2:])

		res, err := gw.Save(ctx, leaderboard.Submission{
			Nickname: *nickname,
			Score:    *score,
			Date:     time.Now().UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			die(err.Error())
		}
		color.Green("✓ saved #%d %s (%d)", res.Entry.ID, res.Entry.Nickname, res.Entry.Score)
		if res.Source == client.SourceLocal {
			color.Yellow("  server unreachable, kept on this device only")
		}

	case "help", "-h", "--help":
		usage(os.Stdout)

	default:
		usage(os.Stderr)
		os.Exit(2)
	}
}

func printBoard(w io.Writer, top []leaderboard.ScoreEntry, src client.Source) {
	title := color.New(color.Bold)
	_, _ = title.Fprintln(w, "ASSOCIA RÁPIDA · TODAY'S TOP SCORES")
	if src == client.SourceLocal {
		_, _ = color.New(color.FgYellow).Fprintln(w, "(offline: showing scores saved on this device)")
	}
	if len(top) == 0 {
		fmt.Fprintln(w, "no scores yet, be the first!")
		return
	}
	gold := color.New(color.FgYellow, color.Bold)
	for i, e := range top {
		line := fmt.Sprintf("%2d. %-20s %3d", i+1, e.Nickname, e.Score)
		if i == 0 {
			_, _ = gold.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: associa scores | associa submit -nickname NAME -score N")
}

func die(msg string) {
	_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", msg)
	os.Exit(1)
}
