package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/moment"
	"jyotish-engine/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The stream is read-only public data; any origin may subscribe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// transitFrame is one websocket push of current sidereal positions.
type transitFrame struct {
	Time      time.Time          `json:"time"`
	Ayanamsa  float64            `json:"ayanamsaDegrees"`
	Positions []positionResponse `json:"positions"`
}

// handleTransitStream upgrades to a websocket and pushes current positions at
// a fixed interval until the client disconnects.
func (s *Server) handleTransitStream(w http.ResponseWriter, r *http.Request) {
	ay, err := ayanamsaFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	observability.DefaultMetrics.TransitStreamsOpen.Inc()
	defer observability.DefaultMetrics.TransitStreamsOpen.Dec()

	// Drain client frames so pings and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.transitInterval)
	defer ticker.Stop()

	// First frame immediately, then on every tick.
	for {
		if err := s.writeTransitFrame(r, conn, ay); err != nil {
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) writeTransitFrame(r *http.Request, conn *websocket.Conn, ay domain.Ayanamsa) error {
	now := s.now()
	positions, err := chart.ResolvePositions(r.Context(), s.provider, moment.JulianDay(now), ay)
	if err != nil {
		s.logger.Printf("transit frame: %v", err)
		return err
	}

	frame := transitFrame{Time: now, Ayanamsa: ay.Degrees}
	for _, b := range domain.Bodies {
		p, ok := positions[b]
		if !ok {
			continue
		}
		frame.Positions = append(frame.Positions, positionResponse{
			Body:              b.String(),
			SiderealLongitude: p.SiderealLongitude,
			Sign:              domain.SignNames[p.Sign],
			DegreesInSign:     p.DegreesWithinSign,
			Nakshatra:         domain.NakshatraNames[p.NakshatraIndex],
			Pada:              p.Pada,
		})
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(frame)
}
