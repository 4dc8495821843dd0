// Command play is a terminal game of chess against the AI. The human
// enters moves in coordinate notation ("e2e4", "e7e8q"); the AI answers
// with a parallel search.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/justinabrahms/thunderdome/internal/chess"
	"github.com/justinabrahms/thunderdome/internal/config"
	"github.com/justinabrahms/thunderdome/internal/engine"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	depth := cfg.Search.Depth
	orchestrator := engine.NewOrchestrator(engine.DefaultWeights(), cfg.Search.Workers)
	cache := engine.NewCache()

	game := chess.NewGame()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("You are white. Enter moves like e2e4 (e7e8q to promote), or 'quit'.")

	for game.Status() == chess.InProgress {
		board := game.Board()
		fmt.Println(board.String())

		if board.SideToMove == chess.White {
			if !humanTurn(game, reader) {
				return
			}
			continue
		}

		result, ok := orchestrator.BestMove(game, depth, cache)
		if !ok {
			break
		}
		fmt.Printf("AI plays %s (%s, score %d)\n", result.Move, chess.SAN(&board, result.Move), result.Score)
		if err := game.Apply(result.Move); err != nil {
			log.Fatal().Err(err).Msg("AI produced an unplayable move")
		}
	}

	board := game.Board()
	fmt.Println(board.String())
	switch game.Status() {
	case chess.Checkmate:
		fmt.Printf("Checkmate. %s wins.\n", game.Winner())
	case chess.Stalemate:
		fmt.Println("Stalemate.")
	case chess.Draw:
		fmt.Printf("Draw: %s.\n", game.DrawReason())
	}
}

// humanTurn reads and applies one human move. Returns false on quit or EOF.
func humanTurn(game *chess.Game, reader *bufio.Reader) bool {
	for {
		fmt.Print("Your move: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		line = strings.TrimSpace(line)
		if line == "quit" || line == "resign" {
			fmt.Println("Goodbye.")
			return false
		}

		move, err := chess.ParseMove(line)
		if err != nil {
			fmt.Println("Moves look like e2e4 or e7e8q. Try again.")
			continue
		}
		if err := game.Apply(move); err != nil {
			if errors.Is(err, chess.ErrIllegalMove) {
				fmt.Printf("%s is not legal here. Try again.\n", move)
				continue
			}
			fmt.Println(err)
			return false
		}
		return true
	}
}
