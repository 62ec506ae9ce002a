package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sealdice/wildseal/wildcard"
	"github.com/sealdice/wildseal/wildcard/types"
)

var ErrRateLimited = errors.New("rate limited, slow down")

// WSServer 通过 websocket 对外提供解析服务，一个连接一个会话，会话内请求按顺序处理
type WSServer struct {
	Addr   string
	Engine ResolveEngine

	// 每个会话独立限速，RateLimit <= 0 时不限
	RateLimit float64
	RateBurst int

	mu       sync.Mutex
	sessions map[string]*wsSession
	server   *http.Server
}

// wsSession wraps a websocket connection with its own limiter.
type wsSession struct {
	id        string
	conn      *websocket.Conn
	limiter   *rate.Limiter
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func (s *wsSession) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *wsSession) close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
	})
}

func NewWSServer(addr string, engine ResolveEngine, limit float64, burst int) *WSServer {
	return &WSServer{
		Addr:      addr,
		Engine:    engine,
		RateLimit: limit,
		RateBurst: burst,
	}
}

// Handler 单独暴露出来，方便挂到已有的 mux 或 httptest 上
func (srv *WSServer) Handler() http.Handler {
	log := zap.S().Named("adapter")
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("ws upgrade failed: %v", err)
			return
		}

		session := srv.newSession(conn)
		srv.track(session)
		defer srv.untrack(session)

		if err := srv.consumeSession(session); err != nil && !isNormalClose(err) {
			log.Debugf("ws session %s closed: %v", session.id, err)
		}
	})
}

func (srv *WSServer) newSession(conn *websocket.Conn) *wsSession {
	limit := rate.Inf
	if srv.RateLimit > 0 {
		limit = rate.Limit(srv.RateLimit)
	}
	burst := srv.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &wsSession{
		id:      uuid.NewString(),
		conn:    conn,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Serve 阻塞直到 ctx 结束或监听失败
func (srv *WSServer) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := zap.S().Named("adapter")

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())

	server := &http.Server{
		Addr:    srv.Addr,
		Handler: mux,
	}
	srv.mu.Lock()
	srv.server = server
	srv.mu.Unlock()

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Infof("listening on ws://%s/ws", srv.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 关闭监听和所有会话
func (srv *WSServer) Close() {
	srv.mu.Lock()
	server := srv.server
	sessions := make([]*wsSession, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.Unlock()

	if server != nil {
		_ = server.Shutdown(context.Background())
	}
	for _, s := range sessions {
		s.close()
	}
}

// SessionCount 当前在线会话数
func (srv *WSServer) SessionCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return len(srv.sessions)
}

func (srv *WSServer) track(s *wsSession) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.sessions == nil {
		srv.sessions = map[string]*wsSession{}
	}
	srv.sessions[s.id] = s
}

func (srv *WSServer) untrack(s *wsSession) {
	srv.mu.Lock()
	delete(srv.sessions, s.id)
	srv.mu.Unlock()
	s.close()
}

func (srv *WSServer) consumeSession(session *wsSession) error {
	err := session.writeJSON(&ResolveResponse{
		Action:  ActionHello,
		OK:      true,
		Session: session.id,
		Version: types.VERSION.String(),
	})
	if err != nil {
		return err
	}

	for {
		_, payload, err := session.conn.ReadMessage()
		if err != nil {
			return err
		}

		resp := srv.dispatchFrame(session, payload)
		if err := session.writeJSON(resp); err != nil {
			return err
		}
	}
}

func (srv *WSServer) dispatchFrame(session *wsSession, payload []byte) *ResolveResponse {
	var req ResolveRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return &ResolveResponse{Action: "error", Error: "bad frame: " + err.Error()}
	}
	if req.Action == "" {
		req.Action = ActionResolve
	}

	resp := &ResolveResponse{ID: req.ID, Action: req.Action}
	if !session.limiter.Allow() {
		resp.Error = ErrRateLimited.Error()
		return resp
	}

	switch req.Action {
	case ActionResolve:
		srv.handleResolve(&req, resp)
	case ActionList:
		templates, err := srv.Engine.Templates()
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.OK = true
		resp.Templates = templates
	default:
		resp.Error = "unknown action: " + req.Action
	}
	return resp
}

func (srv *WSServer) handleResolve(req *ResolveRequest, resp *ResolveResponse) {
	minSeed := req.MinSeed
	if minSeed == 0 {
		minSeed = 1
	}

	var seed uint64
	if req.Seed != nil {
		seed = wildcard.NormalizeSeed(*req.Seed, minSeed)
	} else {
		seed = max(wildcard.RandomSeed(), minSeed)
	}
	resp.Seed = seed

	res, err := srv.Engine.Process(&types.Request{
		File: req.File,
		Line: req.Line,
		Seed: seed,
	})
	if err != nil {
		resp.Error = err.Error()
		return
	}

	resp.OK = true
	resp.Line = res.Line
	resp.Resolved = res.Resolved
	resp.Text = res.Text
	resp.Modifiers = res.Modifiers
}

func isNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, net.ErrClosed)
}
