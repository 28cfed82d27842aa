package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

// wsPath 默认路径
const wsPath = "/ws/visual"

// wsLink WebSocket 连接，读循环出错后视为断开
type wsLink struct {
	conn      *websocket.Conn
	connected atomic.Bool
	writeMu   sync.Mutex
	done      chan struct{}
}

func (l *wsLink) Healthy() bool { return l.connected.Load() }

func (l *wsLink) Close() error {
	l.writeMu.Lock()
	l.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	l.writeMu.Unlock()
	err := l.conn.Close()
	<-l.done
	return err
}

// receiveLoop 丢弃服务端消息，只跟踪连接状态
func (l *wsLink) receiveLoop() {
	defer close(l.done)
	defer l.connected.Store(false)
	for {
		if _, _, err := l.conn.ReadMessage(); err != nil {
			log.Debug("websocket read: %v", err)
			return
		}
	}
}

func (l *wsLink) send(data []byte) error {
	if !l.Healthy() {
		return fmt.Errorf("连接已断开: %w", visual.ErrNotSupported)
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.conn.WriteMessage(websocket.TextMessage, data)
}

// buildWsURL 根据地址构建 WebSocket URL：
//   - localhost:3001 → ws://localhost:3001/ws/visual
//   - http://host → ws://host/ws/visual，https → wss
//   - 其他裸域名默认 wss
func buildWsURL(serverURL string) string {
	switch {
	case strings.HasPrefix(serverURL, "ws://"), strings.HasPrefix(serverURL, "wss://"):
		u, err := url.Parse(serverURL)
		if err != nil {
			return serverURL
		}
		if u.Path == "" || u.Path == "/" {
			u.Path = wsPath
		}
		return u.String()
	case strings.HasPrefix(serverURL, "http://"):
		return "ws://" + strings.TrimPrefix(serverURL, "http://") + wsPath
	case strings.HasPrefix(serverURL, "https://"):
		return "wss://" + strings.TrimPrefix(serverURL, "https://") + wsPath
	case isLocalAddress(serverURL):
		return "ws://" + serverURL + wsPath
	}
	return "wss://" + serverURL + wsPath
}

// isLocalAddress 判断是否为本地地址
func isLocalAddress(addr string) bool {
	host := addr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	host = strings.Trim(host, "[]")
	return host == "localhost" || host == "127.0.0.1" || host == "0.0.0.0" || host == "::1"
}

// WSSurface WebSocket 远程显示面，可向对端发布 Visual 描述
type WSSurface struct {
	*Surface
	link *wsLink
}

// DialWebSocket 连接 WebSocket 远程显示面
func DialWebSocket(ctx context.Context, serverURL string) (*WSSurface, error) {
	wsURL := buildWsURL(serverURL)
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		log.Error("websocket connection failed: %v", err)
		return nil, fmt.Errorf("连接失败 (%s): %w", wsURL, err)
	}

	link := &wsLink{conn: conn, done: make(chan struct{})}
	link.connected.Store(true)
	go link.receiveLoop()

	log.Info("remote websocket %s connected", wsURL)
	return &WSSurface{Surface: NewSurface(wsURL, link), link: link}, nil
}

// Publish 以 protojson 格式发送 Visual 描述
func (s *WSSurface) Publish(v *visual.Visual) error {
	st, err := ToStruct(v)
	if err != nil {
		return err
	}
	data, err := protojson.Marshal(st)
	if err != nil {
		return fmt.Errorf("序列化 Visual 失败: %w", err)
	}
	if err := s.link.send(data); err != nil {
		return fmt.Errorf("发送 %s 失败: %w", v, err)
	}
	return nil
}
