package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pereval_submissions_total",
		Help: "Successfully created pass records.",
	})

	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pereval_updates_total",
		Help: "Pass update attempts by result.",
	}, []string{"result"})

	GateRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pereval_gate_rejections_total",
		Help: "Updates rejected before any write, by gate.",
	}, []string{"gate"})
)

// Handler exposes the default prometheus registry as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
