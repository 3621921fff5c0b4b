package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskmasters/connect4/internal/domain"
)

// Metrics counts game events and HTTP traffic. It satisfies the game notifier contract.
type Metrics struct {
	gatherer prometheus.Gatherer

	piecesDropped *prometheus.CounterVec
	gamesTotal    *prometheus.CounterVec
	winsTotal     *prometheus.CounterVec

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		piecesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "connect4_pieces_dropped_total", Help: "Pieces dropped by player"},
			[]string{"player"},
		),
		gamesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "connect4_games_total", Help: "Finished games by result"},
			[]string{"result"},
		),
		winsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "connect4_wins_total", Help: "Wins by player colour"},
			[]string{"player"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "http_requests_in_flight", Help: "Current in-flight requests"},
		),
	}

	reg.MustRegister(
		m.piecesDropped, m.gamesTotal, m.winsTotal,
		m.httpRequestsTotal, m.httpRequestDuration, m.httpRequestsInFlight,
	)
	return m
}

func (m *Metrics) PieceDropped(move domain.Move, row int) {
	m.piecesDropped.WithLabelValues(move.Player.Token()).Inc()
}

func (m *Metrics) GameWon(winner domain.Player, name string) {
	m.gamesTotal.WithLabelValues("won").Inc()
	m.winsTotal.WithLabelValues(winner.Token()).Inc()
}

func (m *Metrics) GameDrawn() {
	m.gamesTotal.WithLabelValues("draw").Inc()
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.httpRequestsInFlight.Inc()
		defer m.httpRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
