package httpserver

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const greeting = "Connected to notification server"

var errListenerClosed = errors.New("listener closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsListener adapts a websocket connection to notify.Listener. gorilla
// connections allow one concurrent writer, so sends are serialized.
type wsListener struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu   sync.Mutex
	open atomic.Bool
}

func newWSListener(conn *websocket.Conn, writeTimeout time.Duration) *wsListener {
	l := &wsListener{conn: conn, writeTimeout: writeTimeout}
	l.open.Store(true)
	return l
}

func (l *wsListener) Open() bool {
	return l.open.Load()
}

func (l *wsListener) Send(msg []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open.Load() {
		return errListenerClosed
	}
	if err := l.conn.SetWriteDeadline(time.Now().Add(l.writeTimeout)); err != nil {
		return err
	}
	if err := l.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		l.open.Store(false)
		return err
	}
	return nil
}

func (l *wsListener) Close() error {
	if l.open.Swap(false) {
		l.mu.Lock()
		_ = l.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(l.writeTimeout))
		l.mu.Unlock()
	}
	return l.conn.Close()
}

// pushChannelHandler upgrades the request and holds the connection until the
// client goes away. Client messages are only logged.
func pushChannelHandler(hub ListenerHub, logger zerolog.Logger, writeTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade")
			return
		}
		l := newWSListener(conn, writeTimeout)
		if err := l.Send([]byte(greeting)); err != nil {
			logger.Warn().Err(err).Msg("send greeting")
			_ = l.Close()
			return
		}

		id := hub.Connect(l)
		defer func() {
			hub.Disconnect(id)
			_ = l.Close()
		}()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				l.open.Store(false)
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warn().Err(err).Str("listener", id).Msg("websocket read")
				}
				return
			}
			logger.Debug().Str("listener", id).Bytes("payload", payload).Msg("client message")
		}
	}
}
