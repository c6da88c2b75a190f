package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"challenges-backend/models"
)

// QRCodeHandler renders the shareable join blink link of a challenge as a
// QR code PNG.
type QRCodeHandler struct {
	*BaseHandler
	baseURL string
}

// NewQRCodeHandler creates a QR code handler.
func NewQRCodeHandler(baseURL string) *QRCodeHandler {
	return &QRCodeHandler{BaseHandler: NewBaseHandler(), baseURL: baseURL}
}

// HandleGenerateQRCode renders a join-link QR code.
// @Summary QR code for a challenge join link
// @Tags QRCode
// @Produce png
// @Param challengeID query int true "Challenge ID"
// @Param clusterurl query string false "Cluster (defaults to devnet)"
// @Router /api/qrcode [get]
func (h *QRCodeHandler) HandleGenerateQRCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendJSON(w, http.StatusMethodNotAllowed, models.ActionError{Message: "Method not allowed"})
		return
	}

	q := r.URL.Query()
	cluster, err := clusterParam(q)
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: models.ErrorMessage(err)})
		return
	}
	raw, err := requiredParam(q, "challengeID")
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: models.ErrorMessage(err)})
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "challengeID: must be a positive integer"})
		return
	}

	joinURL := fmt.Sprintf("%s/api/actions/join-challenge?clusterurl=%s&challengeID=%d", h.baseURL, cluster, id)
	blink := fmt.Sprintf("https://dial.to/?action=%s&cluster=%s",
		url.QueryEscape("solana-action:"+joinURL), cluster)

	png, err := qrcode.Encode(blink, qrcode.Medium, 256)
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "An unknown error occurred"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
