package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Dial connects to a telemetry WebSocket endpoint and streams decoded
// frames back over the returned channel, closing it when the
// connection ends. Decoding happens on a dedicated goroutine so the
// caller can range over the channel without ever blocking it.
func Dial(addr string) (<-chan Frame, error) {
	wsURL := addr
	if !strings.Contains(wsURL, "://") {
		wsURL = "ws://" + wsURL
	}
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	if !strings.HasSuffix(wsURL, "/ws") {
		wsURL = strings.TrimSuffix(wsURL, "/") + "/ws"
	}

	log.WithField("url", wsURL).Debug("dialing telemetry endpoint")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("services: dial telemetry: %w", err)
	}

	ch := make(chan Frame, 1)
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				log.WithError(err).Debug("telemetry connection closed")
				return
			}
			var frame Frame
			if err := json.Unmarshal(payload, &frame); err != nil {
				log.WithError(err).Warn("failed to decode telemetry frame")
				continue
			}
			ch <- frame
		}
	}()
	return ch, nil
}
