// Package debugserver is component L: a thin, read-only HTTP+WS facade
// over a *sim.World, grounded on the teacher's server/server.go and
// tabular/server/fastview/client.go. It never calls a setter — it only
// samples component J's getters and atomics — and can run concurrently
// with the tick goroutine because the hot scalars it polls are the
// atomic_float-backed mirrors World.syncAtomics keeps up to date.
package debugserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"wolfden/sim"
)

// The rate at which snapshots are pushed to a connected spectator, so as
// not to overburden the socket (mirrors the teacher's pubResolution).
const pubResolution = time.Millisecond * 100

const (
	writeWait  = 1 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server serves a single running *sim.World to any number of read-only
// spectators. It never mutates World and is safe to run on its own
// goroutine alongside the host's tick loop.
type Server struct {
	addr   string
	world  *sim.World
	router *mux.Router
}

// NewServer wires the /snapshot and /ws routes against world. world must
// outlive the server; Server never takes ownership of it.
func NewServer(addr string, world *sim.World) *Server {
	s := &Server{addr: addr, world: world, router: mux.NewRouter()}
	s.router.HandleFunc("/snapshot", s.serveSnapshot).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWebsocket)
	return s
}

// ListenAndServe blocks serving HTTP until the process is killed or the
// listener fails.
func (s *Server) ListenAndServe() error {
	if err := http.ListenAndServe(s.addr, s.router); err != nil {
		return fmt.Errorf("debugserver: %w", err)
	}
	return nil
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.world.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveWebsocket upgrades the request and starts a spectator that
// publishes a throttled stream of snapshots until the peer disconnects.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("debugserver: upgrade:", err)
		return
	}

	spectator := &spectator{
		id:    uuid.New(),
		ws:    ws,
		world: s.world,
	}
	if err := spectator.run(r.Context()); err != nil {
		log.Printf("debugserver: spectator %s: %v", spectator.id, err)
	}
}

// spectator runs the read-pump/ping-pong/publish goroutines for one
// connected websocket client, in the shape of the teacher's
// fastview.client[T].Sync. pingPong and publish both write to ws from
// their own goroutines; writeMu serializes them the way the teacher's
// own fastview.websock wrapped its writeSem channel around Write, since
// gorilla/websocket allows at most one concurrent writer per connection.
type spectator struct {
	id    uuid.UUID
	ws    *websocket.Conn
	world *sim.World

	writeMu sync.Mutex
}

// writeMessage and writeJSON serialize every outbound frame (deadline
// included) through writeMu so pingPong, publish and close never touch
// the connection's write side concurrently.
func (sp *spectator) writeMessage(messageType int, data []byte) error {
	sp.writeMu.Lock()
	defer sp.writeMu.Unlock()
	sp.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return sp.ws.WriteMessage(messageType, data)
}

func (sp *spectator) writeJSON(v any) error {
	sp.writeMu.Lock()
	defer sp.writeMu.Unlock()
	sp.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return sp.ws.WriteJSON(v)
}

func (sp *spectator) run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return sp.readPump(groupCtx) })
	group.Go(func() error { return sp.pingPong(groupCtx) })
	group.Go(func() error { return sp.publish(groupCtx) })

	err := group.Wait()
	sp.close()
	return err
}

// readPump discards client messages but is required so the websocket
// library dispatches pong frames to our handler; any read error is
// permanent and tears down the spectator.
func (sp *spectator) readPump(ctx context.Context) error {
	sp.ws.SetReadDeadline(time.Now().Add(pongWait))
	sp.ws.SetPongHandler(func(string) error {
		sp.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := sp.ws.ReadMessage(); err != nil {
			return err
		}
	}
}

// pingPong uses channerics.NewTicker (the teacher's
// tabular/server/fastview/client.go pingPong helper), a select-friendly
// ticker that also closes its own channel when ctx is done.
func (sp *spectator) pingPong(ctx context.Context) error {
	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if err := sp.writeMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// hotFrame is the frame pushed over /ws: the handful of scalars that are
// genuinely safe to read while a tick is in flight, because World mirrors
// them into atomic_float.AtomicFloat64 at the end of every Step. Anything
// else (positions, phase, choice offers) is plain and single-writer, so
// it belongs behind the one-shot /snapshot GET instead, not this stream.
type hotFrame struct {
	SimTime    float32   `json:"sim_time"`
	HP         float32   `json:"hp"`
	Stamina    float32   `json:"stamina"`
	Morale     float32   `json:"morale"`
	WolfHealth []float32 `json:"wolf_health"`
}

// publish pushes a throttled stream of JSON hot-scalar frames, sampling
// World's atomics fresh on every tick of its own ticker rather than
// waiting on a chan fed by the sim loop, since World has no notion of
// subscribers.
func (sp *spectator) publish(ctx context.Context) error {
	ticker := channerics.NewTicker(ctx.Done(), pubResolution)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			frame := hotFrame{
				SimTime: sp.world.GetTimeSeconds(),
				HP:      sp.world.AtomicHP(),
				Stamina: sp.world.AtomicStamina(),
				Morale:  sp.world.AtomicMorale(),
			}
			for i := 0; i < sp.world.GetWolfSlotCount(); i++ {
				frame.WolfHealth = append(frame.WolfHealth, sp.world.AtomicWolfHealth(i))
			}
			if err := sp.writeJSON(frame); err != nil {
				return err
			}
		}
	}
}

func (sp *spectator) close() {
	_ = sp.writeMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	sp.ws.Close()
}
