package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	solanago "github.com/gagliardetto/solana-go"

	"challenges-backend/config"
	"challenges-backend/models"
)

var joinFamily = ActionFamily{
	Slug:        "create-challenge",
	JoinSlug:    "join-challenge",
	Type:        models.ChallengeTypeGeneric,
	Title:       "Join Challenge",
	Description: "Join a wagered challenge",
	Label:       "Join",
	Icon:        "/join.png",
	Noun:        "challenge",
}

func newJoinHandler(chain *fakeChain, reg *fakeRegistry) *JoinActionHandler {
	return NewJoinActionHandler(joinFamily, chain, reg, testBaseURL)
}

func testRecord() *models.ChallengeRecord {
	return &models.ChallengeRecord{
		ID:       55,
		Name:     "Morning Run",
		Type:     models.ChallengeTypeGeneric,
		Currency: config.CurrencySOL,
		Wager:    "1.5",
		Cluster:  config.ClusterDevnet,
	}
}

func TestJoinDiscoverShowsChallenge(t *testing.T) {
	chain := &fakeChain{}
	reg := &fakeRegistry{record: testRecord()}
	h := newJoinHandler(chain, reg)

	req := httptest.NewRequest(http.MethodGet, "/api/actions/join-challenge?clusterurl=devnet&challengeID=55", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload models.ActionGetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding metadata: %v", err)
	}
	if payload.Description != "Morning Run" {
		t.Fatalf("description = %q, want the challenge name", payload.Description)
	}
	action := payload.Links.Actions[0]
	if !strings.Contains(action.Href, "challengeID=55") {
		t.Fatalf("href %q does not target the challenge", action.Href)
	}
	if len(action.Parameters) != 0 {
		t.Fatal("join action should be one-click, got a parameter schema")
	}
	if reg.getCalls != 1 {
		t.Fatalf("registry get calls = %d, want 1", reg.getCalls)
	}
	if chain.joinCalls != 0 {
		t.Fatal("discover built a transaction")
	}
}

func TestJoinDiscoverUsesChallengeMedia(t *testing.T) {
	record := testRecord()
	record.Media = "https://cdn.example.com/banner.png"
	h := newJoinHandler(&fakeChain{}, &fakeRegistry{record: record})

	req := httptest.NewRequest(http.MethodGet, "/api/actions/join-challenge?challengeID=55", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var payload models.ActionGetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding metadata: %v", err)
	}
	if payload.Icon != record.Media {
		t.Fatalf("icon = %q, want the challenge media", payload.Icon)
	}
}

func TestJoinProposeHappyPath(t *testing.T) {
	chain := &fakeChain{tx: "am9pbnR4"}
	reg := &fakeRegistry{record: testRecord()}
	h := newJoinHandler(chain, reg)
	user := solanago.NewWallet().PublicKey()

	rec := postJSON(t, h.Handle, "/api/actions/join-challenge?clusterurl=devnet&challengeID=55",
		models.ActionPostRequest{Account: user.String()})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload models.ActionPostResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding proposal: %v", err)
	}
	if payload.Transaction != chain.tx {
		t.Fatalf("transaction = %q", payload.Transaction)
	}
	if payload.Message != "Challenge successfully joined!" {
		t.Fatalf("message = %q", payload.Message)
	}
	if payload.Links != nil {
		t.Fatal("join proposal should not chain a next action")
	}
	if chain.joinCalls != 1 {
		t.Fatalf("join builder calls = %d, want 1", chain.joinCalls)
	}
	if !chain.lastPayer.Equals(user) {
		t.Fatalf("join payer = %v, want %v", chain.lastPayer, user)
	}
	if chain.lastJoin == nil || chain.lastJoin.ID != 55 {
		t.Fatalf("join built against record %+v", chain.lastJoin)
	}
}

func TestJoinProposeUnknownChallenge(t *testing.T) {
	chain := &fakeChain{}
	reg := &fakeRegistry{getErr: models.NewUpstreamError("getChallenge", errors.New("challenge not found (status 404)"))}
	h := newJoinHandler(chain, reg)

	rec := postJSON(t, h.Handle, "/api/actions/join-challenge?challengeID=999",
		models.ActionPostRequest{Account: solanago.NewWallet().PublicKey().String()})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if chain.joinCalls != 0 {
		t.Fatal("transaction built for a missing challenge")
	}
}

func TestJoinProposeMalformedAccountSkipsRegistry(t *testing.T) {
	chain := &fakeChain{}
	reg := &fakeRegistry{record: testRecord()}
	h := newJoinHandler(chain, reg)

	rec := postJSON(t, h.Handle, "/api/actions/join-challenge?challengeID=55",
		models.ActionPostRequest{Account: "garbage"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec).Message; msg != "Invalid account public key" {
		t.Fatalf("message = %q", msg)
	}
	if reg.getCalls != 0 || chain.joinCalls != 0 {
		t.Fatal("collaborators reached despite a malformed account")
	}
}

func TestJoinRejectsBadChallengeID(t *testing.T) {
	h := newJoinHandler(&fakeChain{}, &fakeRegistry{record: testRecord()})
	for _, target := range []string{
		"/api/actions/join-challenge",
		"/api/actions/join-challenge?challengeID=0",
		"/api/actions/join-challenge?challengeID=-3",
		"/api/actions/join-challenge?challengeID=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}
