// Package handlers implements the action protocol state machine: Discover
// (GET), Propose (POST), and Confirm (POST on /next-action). The protocol
// is stateless between phases; all continuation state travels in the next
// link and the client-supplied account and signature.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"challenges-backend/config"
	"challenges-backend/metrics"
	"challenges-backend/models"
)

// ChainService builds the unsigned transactions the protocol proposes.
type ChainService interface {
	CreationFeeTx(ctx context.Context, cluster config.Cluster, payer solanago.PublicKey) (string, error)
	JoinTx(ctx context.Context, cluster config.Cluster, ch *models.ChallengeRecord, user solanago.PublicKey) (string, error)
}

// Registry is the external challenge registry, consumed only.
type Registry interface {
	CreateChallenge(ctx context.Context, cluster config.Cluster, intent models.ChallengeIntent) (*models.ChallengeRecord, error)
	GetChallengeByID(ctx context.Context, cluster config.Cluster, id int64) (*models.ChallengeRecord, error)
}

// BaseHandler provides the response plumbing shared by all handlers.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// sendJSON sends a JSON response.
func (h *BaseHandler) sendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// sendActionError normalizes any error into the protocol's {message} shape
// with a 400-class status. Upstream failures are additionally logged at
// error severity; their details never reach the client unmasked beyond the
// typed message.
func (h *BaseHandler) sendActionError(w http.ResponseWriter, action, phase string, err error) {
	if models.IsUpstream(err) {
		log.Printf("ERROR [%s/%s] %v", action, phase, err)
		metrics.UpstreamErrors.WithLabelValues(action).Inc()
	} else {
		log.Printf("[%s/%s] request rejected: %v", action, phase, err)
	}
	metrics.ActionRequests.WithLabelValues(action, phase, "error").Inc()
	h.sendJSON(w, models.ErrorStatus(err), models.ActionError{Message: models.ErrorMessage(err)})
}

// sendActionOK sends a successful protocol payload and counts it.
func (h *BaseHandler) sendActionOK(w http.ResponseWriter, action, phase string, payload interface{}) {
	metrics.ActionRequests.WithLabelValues(action, phase, "ok").Inc()
	h.sendJSON(w, http.StatusOK, payload)
}

// parseActionBody decodes the POST body every protocol phase receives.
func (h *BaseHandler) parseActionBody(r *http.Request) (models.ActionPostRequest, error) {
	defer r.Body.Close()
	var body models.ActionPostRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, models.NewValidationError("body", "invalid JSON request body")
	}
	return body, nil
}

// parseAccount validates the caller-supplied wallet address. Runs before
// any upstream call so malformed addresses never cost an RPC round trip.
func parseAccount(raw string) (solanago.PublicKey, error) {
	account, err := solanago.PublicKeyFromBase58(raw)
	if err != nil {
		return solanago.PublicKey{}, models.NewGenericError("Invalid account public key", http.StatusBadRequest)
	}
	return account, nil
}

// requiredParam extracts a query parameter, failing fast with a 400 naming
// the field when absent.
func requiredParam(q url.Values, name string) (string, error) {
	v := q.Get(name)
	if v == "" {
		return "", models.MissingParameter(name)
	}
	return v, nil
}

// clusterParam extracts clusterurl; optional with the devnet default.
func clusterParam(q url.Values) (config.Cluster, error) {
	raw := q.Get("clusterurl")
	if raw == "" {
		return config.DefaultCluster, nil
	}
	if !config.ValidCluster(raw) {
		return "", models.NewValidationError("clusterurl", "unsupported cluster")
	}
	return config.Cluster(raw), nil
}

// currencyParam extracts token; optional with the native-asset default.
func currencyParam(q url.Values) (config.Currency, error) {
	raw := q.Get("token")
	if raw == "" {
		return config.CurrencySOL, nil
	}
	if !config.ValidCurrency(raw) {
		return "", models.NewValidationError("token", "unsupported currency")
	}
	return config.Currency(raw), nil
}

// positiveWager parses a wager amount and enforces the positive invariant.
func positiveWager(raw string) (decimal.Decimal, error) {
	wager, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, models.NewValidationError("wager", "must be a decimal number")
	}
	if !wager.IsPositive() {
		return decimal.Decimal{}, models.NewGenericError("Wager must be greater than zero", http.StatusBadRequest)
	}
	return wager, nil
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	*BaseHandler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{BaseHandler: NewBaseHandler()}
}

// HandleHealth handles health check requests.
// @Summary Service health
// @Description Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendJSON(w, http.StatusMethodNotAllowed, models.ActionError{Message: "Method not allowed"})
		return
	}
	h.sendJSON(w, http.StatusOK, models.NewHealthResponse())
}
