package callback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Callback outcomes.
const (
	outcomeOK            = "ok"
	outcomeDenied        = "denied"
	outcomeBadState      = "bad_state"
	outcomeMissingCode   = "missing_code"
	outcomeExchangeError = "exchange_error"
	outcomeStoreError    = "store_error"
)

var callbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "misfit_callback",
		Name:      "callbacks_total",
		Help:      "OAuth redirects handled, by outcome.",
	},
	[]string{"outcome"},
)
