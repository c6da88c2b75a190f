package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"challenges-backend/config"
	"challenges-backend/models"
	"challenges-backend/storage"
	"challenges-backend/timeparse"
)

// ActionFamily parameterizes one create/join route pair. The two families
// (generic challenge, tic-tac-toe) share the protocol implementation and
// differ only in labels, icons, and the challenge type recorded in the
// registry.
type ActionFamily struct {
	Slug        string // e.g. "create-challenge"
	JoinSlug    string // e.g. "join-challenge"
	Type        models.ChallengeType
	Title       string
	Description string
	Label       string
	Icon        string // path under the public base URL, e.g. "/name.png"
	Noun        string // human word used in confirmation copy
}

// CreateActionHandler serves one create action family: Discover on GET,
// Propose on POST, and Confirm on POST to the next-action path.
type CreateActionHandler struct {
	*BaseHandler
	family     ActionFamily
	chain      ChainService
	registry   Registry
	signatures storage.SignatureStore
	baseURL    string
}

// NewCreateActionHandler creates a create-family handler.
func NewCreateActionHandler(family ActionFamily, chain ChainService, reg Registry, sigs storage.SignatureStore, baseURL string) *CreateActionHandler {
	return &CreateActionHandler{
		BaseHandler: NewBaseHandler(),
		family:      family,
		chain:       chain,
		registry:    reg,
		signatures:  sigs,
		baseURL:     baseURL,
	}
}

// Handle dispatches the base route: GET discovers, POST proposes.
// @Summary Discover or propose a challenge creation
// @Description GET returns action metadata; POST validates parameters and returns an unsigned creation-fee transaction
// @Tags Actions
// @Accept json
// @Produce json
// @Success 200 {object} models.ActionPostResponse
// @Failure 400 {object} models.ActionError
// @Router /api/actions/create-challenge [post]
func (h *CreateActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.discover(w, r)
	case http.MethodPost:
		if err := h.propose(w, r); err != nil {
			h.sendActionError(w, h.family.Slug, "propose", err)
		}
	default:
		h.sendActionError(w, h.family.Slug, "dispatch",
			models.NewGenericError("Method not allowed", http.StatusMethodNotAllowed))
	}
}

// HandleNextAction dispatches the confirm route. Only POST is supported;
// the original protocol answers GET with an explicit 403.
func (h *CreateActionHandler) HandleNextAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendActionError(w, h.family.Slug, "confirm",
			models.NewGenericError("Method not supported", http.StatusForbidden))
		return
	}
	if err := h.confirm(w, r); err != nil {
		h.sendActionError(w, h.family.Slug, "confirm", err)
	}
}

// discover returns the metadata payload. Pure: no upstream call is ever
// made here. When the query already pins a cluster, the cluster selector is
// omitted from the schema and baked into the follow-up link instead.
func (h *CreateActionHandler) discover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	clusterRaw := q.Get("clusterurl")
	if clusterRaw != "" && !config.ValidCluster(clusterRaw) {
		h.sendActionError(w, h.family.Slug, "discover",
			models.NewValidationError("clusterurl", "unsupported cluster"))
		return
	}

	var params []models.ActionParameter
	href := fmt.Sprintf("/api/actions/%s?clusterurl={clusterurl}&name={name}&token={token}&wager={wager}&startTime={startTime}&duration={duration}", h.family.Slug)
	if clusterRaw != "" {
		href = fmt.Sprintf("/api/actions/%s?clusterurl=%s&name={name}&token={token}&wager={wager}&startTime={startTime}&duration={duration}", h.family.Slug, clusterRaw)
	} else {
		params = append(params, models.ActionParameter{
			Name:     "clusterurl",
			Label:    "Select Cluster",
			Type:     "radio",
			Required: true,
			Options: []models.ActionParameterOption{
				{Label: "Devnet", Value: string(config.ClusterDevnet), Selected: true},
				{Label: "Mainnet", Value: string(config.ClusterMainnet)},
			},
		})
	}

	tokenOptions := make([]models.ActionParameterOption, 0, len(config.Currencies))
	for i, c := range config.Currencies {
		tokenOptions = append(tokenOptions, models.ActionParameterOption{
			Label:    string(c),
			Value:    string(c),
			Selected: i == 0,
		})
	}

	params = append(params,
		models.ActionParameter{Name: "name", Label: "Name your challenge", Required: true},
		models.ActionParameter{Name: "token", Label: "Choose token", Type: "radio", Required: true, Options: tokenOptions},
		models.ActionParameter{Name: "wager", Label: "Set wager amount", Required: true},
		models.ActionParameter{Name: "startTime", Label: "Starting time of the challenge. eg: 5m, 1h, 2d...", Required: true},
		models.ActionParameter{Name: "duration", Label: "Duration of the challenge. eg: 5m, 1h, 2d...", Required: true},
	)

	payload := models.ActionGetResponse{
		Title:       h.family.Title,
		Icon:        h.baseURL + h.family.Icon,
		Type:        "action",
		Description: h.family.Description,
		Label:       h.family.Label,
		Links: &models.ActionLinks{Actions: []models.LinkedAction{{
			Type:       "transaction",
			Label:      h.family.Title,
			Href:       href,
			Parameters: params,
		}}},
	}
	h.sendActionOK(w, h.family.Slug, "discover", payload)
}

// propose validates every inbound parameter, then builds the creation-fee
// transaction. Validation failures short-circuit before any transaction is
// built; nothing is ever half-assembled.
func (h *CreateActionHandler) propose(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	cluster, err := clusterParam(q)
	if err != nil {
		return err
	}
	name, err := requiredParam(q, "name")
	if err != nil {
		return err
	}
	token, err := currencyParam(q)
	if err != nil {
		return err
	}
	wagerRaw, err := requiredParam(q, "wager")
	if err != nil {
		return err
	}
	if _, err := positiveWager(wagerRaw); err != nil {
		return err
	}
	startTime, err := requiredParam(q, "startTime")
	if err != nil {
		return err
	}
	duration, err := requiredParam(q, "duration")
	if err != nil {
		return err
	}
	startDate, endDate, err := timeparse.TimeRange(startTime, duration)
	if err != nil {
		return err
	}
	// A zero duration ("0s") parses but yields an empty interval; reject it
	// here so the user never signs a fee transaction Confirm would refuse.
	if startDate >= endDate {
		return models.NewValidationError("duration", "must be greater than zero")
	}

	body, err := h.parseActionBody(r)
	if err != nil {
		return err
	}
	account, err := parseAccount(body.Account)
	if err != nil {
		return err
	}

	tx, err := h.chain.CreationFeeTx(r.Context(), cluster, account)
	if err != nil {
		return err
	}

	next := fmt.Sprintf("/api/actions/%s/next-action?clusterurl=%s&name=%s&token=%s&wager=%s&startDate=%d&endDate=%d",
		h.family.Slug, cluster, url.QueryEscape(name), token, wagerRaw, startDate, endDate)

	payload := models.ActionPostResponse{
		Type:        "transaction",
		Transaction: tx,
		Message:     fmt.Sprintf("Create %s %q", h.family.Noun, name),
		Links:       &models.PostActionLinks{Next: &models.NextActionLink{Type: "post", Href: next}},
	}
	h.sendActionOK(w, h.family.Slug, "propose", payload)
	return nil
}

// confirm is reached after the client signed and broadcast the proposed
// transaction. It creates the durable registry record and answers with the
// completed payload. Record creation is deduped on the broadcast signature:
// replaying a confirm call with a known signature returns the original
// record instead of creating a duplicate.
func (h *CreateActionHandler) confirm(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	clusterRaw, err := requiredParam(q, "clusterurl")
	if err != nil {
		return err
	}
	if !config.ValidCluster(clusterRaw) {
		return models.NewValidationError("clusterurl", "unsupported cluster")
	}
	cluster := config.Cluster(clusterRaw)

	name, err := requiredParam(q, "name")
	if err != nil {
		return err
	}
	tokenRaw, err := requiredParam(q, "token")
	if err != nil {
		return err
	}
	if !config.ValidCurrency(tokenRaw) {
		return models.NewValidationError("token", "unsupported currency")
	}
	wagerRaw, err := requiredParam(q, "wager")
	if err != nil {
		return err
	}
	if _, err := positiveWager(wagerRaw); err != nil {
		return err
	}
	startRaw, err := requiredParam(q, "startDate")
	if err != nil {
		return err
	}
	startDate, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil {
		return models.NewValidationError("startDate", "must be a unix millisecond timestamp")
	}
	endRaw, err := requiredParam(q, "endDate")
	if err != nil {
		return err
	}
	endDate, err := strconv.ParseInt(endRaw, 10, 64)
	if err != nil {
		return models.NewValidationError("endDate", "must be a unix millisecond timestamp")
	}
	if startDate >= endDate {
		return models.NewValidationError("endDate", "end must be after start")
	}

	body, err := h.parseActionBody(r)
	if err != nil {
		return err
	}
	if _, err := parseAccount(body.Account); err != nil {
		return models.NewGenericError("Invalid account provided", http.StatusBadRequest)
	}
	if body.Signature == "" {
		return models.NewGenericError(`Invalid "signature" provided`, http.StatusBadRequest)
	}

	challengeID, err := h.signatures.LookupSignature(r.Context(), body.Signature)
	switch {
	case err == nil:
		// Replay: this signature already created a record.
		h.sendActionOK(w, h.family.Slug, "confirm", h.completedPayload(cluster, name, challengeID))
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	intent := models.ChallengeIntent{
		Name:      name,
		Type:      h.family.Type,
		Currency:  config.Currency(tokenRaw),
		Wager:     wagerRaw,
		StartDate: startDate,
		EndDate:   endDate,
		Cluster:   cluster,
	}
	record, err := h.registry.CreateChallenge(r.Context(), cluster, intent)
	if err != nil {
		return err
	}

	if err := h.signatures.RecordSignature(r.Context(), body.Signature, record.ID); err != nil {
		// The record exists; dedupe is best effort from here on.
		log.Printf("ERROR [%s/confirm] failed to record signature: %v", h.family.Slug, err)
	}

	h.sendActionOK(w, h.family.Slug, "confirm", h.completedPayload(cluster, name, record.ID))
	return nil
}

func (h *CreateActionHandler) completedPayload(cluster config.Cluster, name string, challengeID int64) models.CompletedAction {
	joinURL := fmt.Sprintf("%s/api/actions/%s?clusterurl=%s&challengeID=%d", h.baseURL, h.family.JoinSlug, cluster, challengeID)
	blink := fmt.Sprintf("https://dial.to/?action=%s&cluster=%s",
		url.QueryEscape("solana-action:"+joinURL), cluster)

	return models.CompletedAction{
		Type:        "completed",
		Title:       fmt.Sprintf("Your %s has been created successfully!", h.family.Noun),
		Icon:        h.baseURL + h.family.Icon,
		Label:       fmt.Sprintf("%s Created", h.family.Title),
		Description: fmt.Sprintf("%q is live. Share the join blink: %s", name, blink),
	}
}
