package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Instrumentation struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterWorkoutsLogged     prometheus.Counter
	CounterMealsLogged        prometheus.Counter
	CounterPlansGenerated     *prometheus.CounterVec
	CounterChatMessages       prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewInstrumentation(namespace, subsystem string) *Instrumentation {
	return NewInstrumentationWithRegisterer(namespace, subsystem, prometheus.DefaultRegisterer)
}

func NewTestInstrumentation() *Instrumentation {
	return NewInstrumentationWithRegisterer("fitbridge", "test_server", prometheus.NewRegistry())
}

func NewInstrumentationWithRegisterer(namespace, subsystem string, reg prometheus.Registerer) *Instrumentation {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterWorkoutsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_logged",
		Help:      "The total number of workout log entries created",
	})
	counterMealsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "meals_logged",
		Help:      "The total number of diet log entries created",
	})
	counterPlansGenerated := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_generated",
		Help:      "The total number of AI plans generated",
	}, []string{"plan_type"})
	counterChatMessages := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "chat_messages",
		Help:      "The total number of coach chat messages handled",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.001, 0.01, 0.05, 0.1,
				0.25, 0.5, 1, 2.5, 5, 10, 60,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of all requests",
		},
	)

	return &Instrumentation{
		CounterRequests:           counterRequests,
		CounterWorkoutsLogged:     counterWorkoutsLogged,
		CounterMealsLogged:        counterMealsLogged,
		CounterPlansGenerated:     counterPlansGenerated,
		CounterChatMessages:       counterChatMessages,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistRequestDuration:       histReqDuration,
	}
}
