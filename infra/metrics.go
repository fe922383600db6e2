package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CapturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cam_captures_total",
		Help: "Capture attempts by result.",
	}, []string{"result"})

	PublishesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cam_publishes_total",
		Help: "Publish pipeline runs by result.",
	}, []string{"result"})

	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cam_event_subscribers",
		Help: "Currently connected event stream clients.",
	})
)
