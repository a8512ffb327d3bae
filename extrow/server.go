package extrow

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tenonwm/tenon"
)

// Server is a thin JSON-over-websocket broadcaster for the ext-row
// surface. It mirrors Manager's row/camera state to connected
// status-bar-style clients and relays their focus/camera requests back
// into the Manager.
//
// The client set is guarded by a mutex: the compositor's event-loop
// goroutine writes frames, while each connection's read goroutine only
// touches its own socket and the Manager's methods. Each read goroutine
// also holds the mutex while its request is applied to the Manager, so
// requests from different connections run one at a time.
type Server struct {
	manager  *Manager
	clock    *tenon.Clock
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer returns a Server broadcasting manager's state. Incoming
// requests are stamped with the system clock; substitute a fake via
// the clock field in tests.
func NewServer(manager *Manager) *Server {
	return &Server{
		manager: manager,
		clock:   tenon.NewClock(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]struct{}{},
	}
}

// frame is the wire envelope every broadcast and request uses.
type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// request is a client→server RPC: the op name plus its JSON-encoded
// arguments, matching the ext_row_manager_v1 request set.
type request struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args"`
}

// ServeHTTP upgrades the connection to a websocket and serves it until
// the client disconnects. Each connection gets its own read loop;
// requests are applied to the shared Manager one at a time, keeping
// layout mutation serialized rather than concurrent.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[tenon] extrow: upgrade failed: %v\n", err)
		return
	}
	s.addClient(conn)
	defer s.removeClient(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req request
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendError(conn, "", err)
			continue
		}
		s.mu.Lock()
		err = s.handle(req)
		s.mu.Unlock()
		if err != nil {
			s.sendError(conn, req.Op, err)
		}
	}
}

func (s *Server) addClient(c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) removeClient(c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
	c.Close()
}

func (s *Server) sendError(c *websocket.Conn, op string, err error) {
	payload, _ := json.Marshal(map[string]string{"op": op, "error": err.Error()})
	s.mu.Lock()
	defer s.mu.Unlock()
	c.WriteJSON(frame{Type: "error", Data: payload})
}

// handle applies one client request to the Manager.
func (s *Server) handle(req request) error {
	now := s.clock.Now()
	switch req.Op {
	case "focus_row":
		var args struct {
			RowID tenon.RowID `json:"row_id"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.FocusRow(args.RowID, now)
	case "focus_row_at":
		var args struct{ X, Y float64 }
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.FocusRowAt(args.X, args.Y, now)
	case "set_row_name":
		var args struct {
			RowID tenon.RowID `json:"row_id"`
			Name  string      `json:"name"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.SetRowName(args.RowID, args.Name)
	case "set_camera":
		var args struct {
			Output     tenon.OutputID `json:"output"`
			X, Y, Zoom float64
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.SetCamera(args.Output, args.X, args.Y, args.Zoom, now)
	case "move_camera_by":
		var args struct {
			Output        tenon.OutputID `json:"output"`
			DX, DY, DZoom float64
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.MoveCameraBy(args.Output, args.DX, args.DY, args.DZoom)
	case "center_camera_on_row":
		var args struct {
			RowID tenon.RowID `json:"row_id"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.CenterCameraOnRow(args.RowID, now)
	case "create_bookmark":
		var args struct {
			Output tenon.OutputID `json:"output"`
			Name   string         `json:"name"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		_, err := s.manager.CreateBookmark(args.Output, args.Name, now)
		return err
	case "remove_bookmark":
		var args struct {
			BookmarkID tenon.BookmarkID `json:"bookmark_id"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.RemoveBookmark(args.BookmarkID)
	case "goto_bookmark":
		var args struct {
			Output     tenon.OutputID   `json:"output"`
			BookmarkID tenon.BookmarkID `json:"bookmark_id"`
		}
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return err
		}
		return s.manager.GotoBookmark(args.Output, args.BookmarkID, now)
	case "focus_row_up":
		return s.manager.FocusRowUp(now)
	case "focus_row_down":
		return s.manager.FocusRowDown(now)
	default:
		return fmt.Errorf("unknown op %q", req.Op)
	}
}

// BroadcastGroup pushes a camera/visible-rows frame for mon to every
// connected client, the analogue of an ext_row_group_v1 event. The
// event loop calls this after AdvanceAnimations each frame.
func (s *Server) BroadcastGroup(mon *tenon.Monitor, now time.Time) {
	snap := s.manager.GroupSnapshot(mon, now)
	payload, err := json.Marshal(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[tenon] extrow: marshal group snapshot: %v\n", err)
		return
	}
	s.broadcast(frame{Type: "group", Data: payload})
}

// BroadcastRows pushes the per-row state of every materialized row in
// canvas, the analogue of ext_row_handle_v1's geometry/state/
// window_count/active_window/name events.
func (s *Server) BroadcastRows(canvas *tenon.Canvas) {
	payload, err := json.Marshal(RowSnapshots(canvas))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[tenon] extrow: marshal row snapshots: %v\n", err)
		return
	}
	s.broadcast(frame{Type: "rows", Data: payload})
}

func (s *Server) broadcast(f frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if err := c.WriteJSON(f); err != nil {
			fmt.Fprintf(os.Stderr, "[tenon] extrow: write to client failed: %v\n", err)
		}
	}
}

// ClientCount returns the number of currently connected clients, for
// tests and diagnostics.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
