package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"challenges-backend/config"
	"challenges-backend/models"
)

// JoinActionHandler serves one join action family. Joining is a single
// round trip: GET shows the challenge, POST returns the wager-transfer
// transaction, and there is no next-action.
type JoinActionHandler struct {
	*BaseHandler
	family   ActionFamily
	chain    ChainService
	registry Registry
	baseURL  string
}

// NewJoinActionHandler creates a join-family handler.
func NewJoinActionHandler(family ActionFamily, chain ChainService, reg Registry, baseURL string) *JoinActionHandler {
	return &JoinActionHandler{
		BaseHandler: NewBaseHandler(),
		family:      family,
		chain:       chain,
		registry:    reg,
		baseURL:     baseURL,
	}
}

// Handle dispatches the join route.
// @Summary Discover or join a challenge
// @Description GET renders a one-click join action for a challenge; POST returns the unsigned wager-transfer transaction
// @Tags Actions
// @Accept json
// @Produce json
// @Success 200 {object} models.ActionPostResponse
// @Failure 400 {object} models.ActionError
// @Router /api/actions/join-challenge [post]
func (h *JoinActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if err := h.discover(w, r); err != nil {
			h.sendActionError(w, h.family.JoinSlug, "discover", err)
		}
	case http.MethodPost:
		if err := h.propose(w, r); err != nil {
			h.sendActionError(w, h.family.JoinSlug, "propose", err)
		}
	default:
		h.sendActionError(w, h.family.JoinSlug, "dispatch",
			models.NewGenericError("Method not allowed", http.StatusMethodNotAllowed))
	}
}

func (h *JoinActionHandler) params(q url.Values) (cluster config.Cluster, id int64, err error) {
	cluster, err = clusterParam(q)
	if err != nil {
		return "", 0, err
	}
	raw, err := requiredParam(q, "challengeID")
	if err != nil {
		return "", 0, err
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, models.NewValidationError("challengeID", "must be a positive integer")
	}
	return cluster, id, nil
}

// discover fetches the target challenge and renders a one-click join
// action, using the challenge's media as the icon when it has one.
func (h *JoinActionHandler) discover(w http.ResponseWriter, r *http.Request) error {
	cluster, id, err := h.params(r.URL.Query())
	if err != nil {
		return err
	}

	record, err := h.registry.GetChallengeByID(r.Context(), cluster, id)
	if err != nil {
		return err
	}

	icon := h.baseURL + h.family.Icon
	if record.Media != "" {
		icon = record.Media
	}

	payload := models.ActionGetResponse{
		Title:       h.family.Title,
		Icon:        icon,
		Type:        "action",
		Description: record.Name,
		Label:       h.family.Label,
		Links: &models.ActionLinks{Actions: []models.LinkedAction{{
			Type:  "transaction",
			Label: fmt.Sprintf("Join %s", record.Name),
			Href:  fmt.Sprintf("/api/actions/%s?clusterurl=%s&challengeID=%d", h.family.JoinSlug, cluster, id),
		}}},
	}
	h.sendActionOK(w, h.family.JoinSlug, "discover", payload)
	return nil
}

// propose resolves the challenge, scales its recorded wager to chain units,
// and returns the escrow transfer for the caller to sign. The caller's
// account is validated before any upstream call.
func (h *JoinActionHandler) propose(w http.ResponseWriter, r *http.Request) error {
	cluster, id, err := h.params(r.URL.Query())
	if err != nil {
		return err
	}

	body, err := h.parseActionBody(r)
	if err != nil {
		return err
	}
	account, err := parseAccount(body.Account)
	if err != nil {
		return err
	}

	record, err := h.registry.GetChallengeByID(r.Context(), cluster, id)
	if err != nil {
		return err
	}

	tx, err := h.chain.JoinTx(r.Context(), cluster, record, account)
	if err != nil {
		return err
	}

	payload := models.ActionPostResponse{
		Type:        "transaction",
		Transaction: tx,
		Message:     "Challenge successfully joined!",
	}
	h.sendActionOK(w, h.family.JoinSlug, "propose", payload)
	return nil
}
