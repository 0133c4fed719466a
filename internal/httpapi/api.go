package httpapi

import (
	"net/http"

	"campusbank.org/internal/alert"
	"campusbank.org/internal/bank"
	"campusbank.org/internal/helpdesk"
	"campusbank.org/internal/obs"
)

// API is the HTTP layer over the ledger core. It renders outcomes; all
// rule checks live in internal/bank.
type API struct {
	mux     *http.ServeMux
	version string

	dir    *bank.Directory
	coord  *bank.Coordinator
	desk   *helpdesk.Desk
	alerts *alert.Stream

	rateBurst  int
	ratePerSec int
}

func New(version string, dir *bank.Directory, coord *bank.Coordinator, desk *helpdesk.Desk, alerts *alert.Stream) *API {
	a := &API{
		mux:        http.NewServeMux(),
		version:    version,
		dir:        dir,
		coord:      coord,
		desk:       desk,
		alerts:     alerts,
		rateBurst:  20,
		ratePerSec: 10,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/v1/sessions", a.handleSessions)
	a.mux.HandleFunc("/v1/accounts", a.handleAccountsCollection)
	a.mux.HandleFunc("/v1/accounts/", a.handleAccountResource)
	a.mux.HandleFunc("/v1/transfers", a.handleTransfers)
	a.mux.HandleFunc("/v1/withdrawals/", a.handleWithdrawalConfirmation)
	a.mux.HandleFunc("/v1/tickets", a.handleTickets)
	a.mux.HandleFunc("/v1/rates", a.handleRates)
	a.mux.HandleFunc("/v1/rates/convert", a.handleConvert)
	a.mux.HandleFunc("/v1/deposit-quote", a.handleDepositQuote)
	a.mux.HandleFunc("/v1/alerts/stream", a.StreamAlerts)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = MaxBodyBytes(h, 1<<20)
	h = SecurityHeaders(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
