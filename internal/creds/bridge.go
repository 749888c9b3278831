package creds

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Bridge message contract shared with the companion website.
const (
	BridgeSource    = "exply-web"
	BridgeTokenType = "SUPABASE_TOKEN"
)

// BridgeMessage is the inter-context envelope the companion website
// broadcasts after a user signs in.
type BridgeMessage struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Token  string `json:"token"`
}

var bridgeUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Bridge receives bearer tokens from the companion website over a
// websocket channel and feeds them into a Cache. Messages from other
// sources or of other types are ignored; absence of any broadcast
// simply leaves the client unauthenticated.
type Bridge struct {
	cache *Cache
	srv   *http.Server
}

// NewBridge creates a bridge feeding the given cache.
func NewBridge(cache *Cache) *Bridge {
	return &Bridge{cache: cache}
}

// Handler returns the websocket endpoint handler, exported so the
// bridge can be mounted on an existing router in tests or embeddings.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(b.handleWS)
}

func (b *Bridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := bridgeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("bridge: websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("bridge: websocket read failed")
			}
			return
		}

		var msg BridgeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Source != BridgeSource || msg.Type != BridgeTokenType {
			continue
		}
		if msg.Token == "" {
			continue
		}

		b.cache.Set(msg.Token)
		log.Info().Msg("bridge: received session token")
	}
}

// Listen serves the bridge endpoint at /bridge on addr until Shutdown.
func (b *Bridge) Listen(addr string) error {
	r := chi.NewRouter()
	r.Handle("/bridge", b.Handler())
	b.srv = &http.Server{Addr: addr, Handler: r}
	return b.srv.ListenAndServe()
}

// Shutdown stops the listener started by Listen.
func (b *Bridge) Shutdown(ctx context.Context) error {
	if b.srv != nil {
		return b.srv.Shutdown(ctx)
	}
	return nil
}
