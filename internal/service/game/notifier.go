package game

import (
	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/domain"
)

// Notifier receives game events. Calls are fire-and-forget: nothing is returned
// and the game never waits on, or fails because of, a notifier.
type Notifier interface {
	PieceDropped(move domain.Move, row int)
	GameWon(winner domain.Player, name string)
	GameDrawn()
}

// Notifiers fans an event out to every notifier, isolating panics.
type Notifiers []Notifier

func (ns Notifiers) PieceDropped(move domain.Move, row int) {
	for _, n := range ns {
		safely(func() { n.PieceDropped(move, row) })
	}
}

func (ns Notifiers) GameWon(winner domain.Player, name string) {
	for _, n := range ns {
		safely(func() { n.GameWon(winner, name) })
	}
}

func (ns Notifiers) GameDrawn() {
	for _, n := range ns {
		safely(n.GameDrawn)
	}
}

func safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("[NOTIFY] notifier panicked: %v", r)
		}
	}()
	fn()
}

// LogNotifier writes events to the log.
type LogNotifier struct{}

func (LogNotifier) PieceDropped(move domain.Move, row int) {
	log.WithFields(log.Fields{
		"player": move.Player,
		"column": move.Column,
		"row":    row,
	}).Debug("[GAME] Piece dropped")
}

func (LogNotifier) GameWon(winner domain.Player, name string) {
	log.WithFields(log.Fields{
		"player": winner,
		"name":   name,
	}).Info("[GAME] Game won")
}

func (LogNotifier) GameDrawn() {
	log.Info("[GAME] Game drawn")
}
