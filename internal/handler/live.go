package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/templui/scheduletable/internal/feed"
	"github.com/templui/scheduletable/internal/grid"
	"github.com/templui/scheduletable/internal/metrics"
	"github.com/templui/scheduletable/internal/service"
	"github.com/templui/scheduletable/internal/ui"
	"github.com/templui/scheduletable/internal/ui/pages"
)

const writeWait = 10 * time.Second

// LiveHandler runs live grid sessions over websockets. Each session mounts a
// grid on the change broker and pushes the re-rendered grid after every
// resync.
type LiveHandler struct {
	scheduleService *service.ScheduleService
	snapshotService *service.SnapshotService
	broker          *feed.Broker
	metrics         *metrics.Metrics
	pingInterval    time.Duration
	upgrader        websocket.Upgrader
}

func NewLiveHandler(
	scheduleService *service.ScheduleService,
	snapshotService *service.SnapshotService,
	broker *feed.Broker,
	m *metrics.Metrics,
	pingInterval time.Duration,
) *LiveHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &LiveHandler{
		scheduleService: scheduleService,
		snapshotService: snapshotService,
		broker:          broker,
		metrics:         m,
		pingInterval:    pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Connect upgrades to a websocket and runs one live grid session. The first
// frame is sent right after the session subscribes, so changes made since
// the page was rendered are not missed.
func (h *LiveHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.readPump(conn, cancel)
	go h.pingPump(ctx, conn)

	g := grid.New(h.scheduleService, nil, h.metrics)
	slog.Debug("live session started", "remote_addr", r.RemoteAddr, "subscribers", h.broker.Subscribers()+1)

	err = g.Mount(ctx, h.broker, func(v grid.View) error {
		frame, err := ui.Bytes(ctx, pages.Grid(pages.GridProps{
			View:             v,
			OOB:              true,
			SnapshotsEnabled: h.snapshotService.Enabled(),
		}))
		if err != nil {
			return err
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, frame)
	})
	if err != nil {
		slog.Debug("live session write failed", "error", err)
	}

	// Server shutdown closes the broker; tell the browser so the ws
	// extension reconnects to the next instance
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
		time.Now().Add(writeWait))
	slog.Debug("live session ended", "remote_addr", r.RemoteAddr)
}

// readPump discards client frames and cancels the session once the
// connection closes or stops answering pings.
func (h *LiveHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	deadline := 2 * h.pingInterval
	conn.SetReadDeadline(time.Now().Add(deadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			return
		}
	}
}

func (h *LiveHandler) pingPump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				return
			}
		}
	}
}
