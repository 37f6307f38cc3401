package ingress

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"

	"github.com/saboracaiteria/br.canaa/pkg/ids"
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/registry"
	"github.com/saboracaiteria/br.canaa/pkg/utils"
)

const (
	CLIENT_MESSAGE_LIMIT int = 256
	WRITE_TIMEOUT            = 5 * time.Second
)

// Handler is what the ingress feeds connections and messages into.
type Handler interface {
	Connect(registry.Connection)
	Disconnect(connID string)
	HandleMessage(connID string, msg protocol.Inbound)
}

var _ Handler = &registry.Registry{}

type frame struct {
	typ  websocket.MessageType
	data []byte
}

type WSClient struct {
	id        string
	host      string
	device    string
	session   utils.Session
	limiter   *rate.Limiter
	send      chan frame
	closeSlow func()
	log       zerolog.Logger

	// replies use the codec of the last frame the client sent
	codec protocol.Codec
	mutex deadlock.RWMutex
}

var _ registry.Connection = &WSClient{}

func NewWSClient(ctx context.Context, limiter *rate.Limiter) *WSClient {
	id := ids.NewSessionID()
	return &WSClient{
		id:        id,
		session:   utils.NewSession(ctx, id),
		limiter:   limiter,
		send:      make(chan frame, CLIENT_MESSAGE_LIMIT),
		closeSlow: func() {},
		codec:     protocol.JSON,
		log:       log.With().Str("session", id).Logger(),
	}
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) Host() string {
	return c.host
}

func (c *WSClient) Codec() protocol.Codec {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.codec
}

func (c *WSClient) setCodec(codec protocol.Codec) {
	c.mutex.Lock()
	c.codec = codec
	c.mutex.Unlock()
}

// Send queues an event without blocking. A client that cannot keep up is
// disconnected.
func (c *WSClient) Send(event protocol.Event) {
	if c.session.IsDone() {
		return
	}

	codec := c.Codec()
	data, err := protocol.Encode(codec, event)
	if err != nil {
		c.log.Error().Err(err).Str("event", event.EventName()).Msg("could not encode event")
		return
	}

	typ := websocket.MessageText
	if codec.Name() == protocol.CBOR.Name() {
		typ = websocket.MessageBinary
	}

	select {
	case c.send <- frame{typ, data}:
	default:
		go c.closeSlow()
	}
}

func codecFor(typ websocket.MessageType) protocol.Codec {
	if typ == websocket.MessageBinary {
		return protocol.CBOR
	}
	return protocol.JSON
}

type WSIngress struct {
	handler    Handler
	clients    map[*WSClient]struct{}
	mutex      deadlock.Mutex
	rate       rate.Limit
	burst      int
	httpServer *http.Server
}

func NewWSIngress(handler Handler, messageRate float64, messageBurst int) *WSIngress {
	limit := rate.Inf
	if messageRate > 0 {
		limit = rate.Limit(messageRate)
	}
	if messageBurst <= 0 {
		messageBurst = 1
	}
	return &WSIngress{
		handler: handler,
		clients: make(map[*WSClient]struct{}),
		rate:    limit,
		burst:   messageBurst,
	}
}

func WriteTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg frame) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Write(ctx, msg.typ, msg.data)
}

func (server *WSIngress) AddClient(s *WSClient) {
	server.mutex.Lock()
	server.clients[s] = struct{}{}
	server.mutex.Unlock()
}

func (server *WSIngress) RemoveClient(client *WSClient) {
	server.mutex.Lock()
	delete(server.clients, client)
	server.mutex.Unlock()
}

func (server *WSIngress) NumClients() int {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	return len(server.clients)
}

// handleFrame decodes one inbound frame and hands it to the handler.
// Malformed, unknown and rate-limited messages are dropped.
func (server *WSIngress) handleFrame(client *WSClient, typ websocket.MessageType, data []byte) {
	if !client.limiter.Allow() {
		client.log.Debug().Msg("message rate exceeded, dropping")
		return
	}

	codec := codecFor(typ)
	client.setCodec(codec)

	event, payload, err := codec.DecodeEnvelope(data)
	if err != nil {
		client.log.Debug().Err(err).Str("codec", codec.Name()).Msg("malformed envelope")
		return
	}

	msg, err := protocol.Decode(codec, event, payload)
	if err != nil {
		client.log.Debug().Err(err).Str("event", event).Msg("could not decode message")
		return
	}

	server.handler.HandleMessage(client.id, msg)
}

func (server *WSIngress) HandleClient(ctx context.Context, c *websocket.Conn, host string, agent string) error {
	client := NewWSClient(ctx, rate.NewLimiter(server.rate, server.burst))
	defer client.session.Cancel()

	client.host = host
	client.device = deviceType(agent)
	client.closeSlow = func() {
		c.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with messages")
	}
	client.log = client.log.With().Str("host", host).Logger()

	server.AddClient(client)
	defer server.RemoveClient(client)

	server.handler.Connect(client)
	defer server.handler.Disconnect(client.id)

	logger := client.log
	logger.Info().Str("device", client.device).Msg("client joined")

	ctx = client.session.Ctx()
	errs := make(chan error, 1)

	go func() {
		for {
			typ, message, err := c.Read(ctx)
			if err != nil {
				errs <- err
				return
			}
			server.handleFrame(client, typ, message)
		}
	}()

	for {
		select {
		case msg := <-client.send:
			err := WriteTimeout(ctx, WRITE_TIMEOUT, c, msg)
			if err != nil {
				logger.Error().Msg("client missed write timeout; disconnecting")
				return err
			}
		case err := <-errs:
			logger.Info().Dur("uptime", client.session.Uptime()).Msg("client left")
			return err
		case <-ctx.Done():
			logger.Info().Msg("client left")
			return ctx.Err()
		}
	}
}

func deviceType(agent string) string {
	ua := useragent.Parse(agent)
	switch {
	case ua.Bot:
		return "bot"
	case ua.Tablet:
		return "tablet"
	case ua.Mobile:
		return "mobile"
	case ua.Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

func (server *WSIngress) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})

	if err != nil {
		log.Error().Err(err).Msg("error accepting client connection")
		return
	}

	defer c.Close(websocket.StatusInternalError, "operational fault during relay")

	// behind a reverse proxy the real address is forwarded
	hostname := r.RemoteAddr

	original, ok := r.Header["X-Forwarded-For"]
	if ok {
		hostname = original[0]
	}

	err = server.HandleClient(r.Context(), c, hostname, r.UserAgent())
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("client connection ended with error")
		return
	}
}

// Serve listens on port with the given handler, which is expected to
// route /ws to this ingress.
func (server *WSIngress) Serve(ctx context.Context, port int, handler http.Handler) error {
	listen, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		log.Error().Err(err).Msg("failed to bind WebSocket port")
		return err
	}

	log.Info().Msgf("listening on http://%v", listen.Addr())

	server.httpServer = &http.Server{
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	return server.httpServer.Serve(listen)
}

func (server *WSIngress) Shutdown(ctx context.Context) {
	if server.httpServer == nil {
		return
	}
	server.httpServer.Shutdown(ctx)
}
