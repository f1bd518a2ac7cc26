package services

import "github.com/Dosada05/doubles-cup/brackets"

// Notifier pushes events into websocket rooms. *brackets.Hub implements it.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
	RoomSize(roomID string) int
}

func notifyTournament(n Notifier, tournamentID int, event string, payload interface{}) {
	if n == nil {
		return
	}
	room := brackets.TournamentRoom(tournamentID)
	n.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
}
