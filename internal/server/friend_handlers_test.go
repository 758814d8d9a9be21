package server

import (
	"fmt"
	"net/http"
	"testing"

	"musclejourney/internal/models"
)

func TestConnectionFlow_SendAcceptConnected(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	var rel models.Relationship
	status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, &rel)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 sending request, got %d", status)
	}
	if rel.Status != models.RelationshipStatusPending {
		t.Fatalf("expected pending status, got %q", rel.Status)
	}
	if rel.InitiatorID != alice.ID || rel.TargetID != bob.ID {
		t.Fatalf("unexpected direction: initiator=%d target=%d", rel.InitiatorID, rel.TargetID)
	}

	// Sender sees pending_outgoing, recipient sees pending_incoming.
	var statusResp struct {
		Status models.RelationshipState `json:"status"`
	}
	doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", bob.ID), nil, &statusResp)
	if statusResp.Status != models.RelationshipStatePendingOutgoing {
		t.Fatalf("expected pending_outgoing for sender, got %q", statusResp.Status)
	}

	viewer = bob.ID
	doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", alice.ID), nil, &statusResp)
	if statusResp.Status != models.RelationshipStatePendingIncoming {
		t.Fatalf("expected pending_incoming for recipient, got %q", statusResp.Status)
	}

	var incoming []models.Relationship
	doRequest(t, app, http.MethodGet, "/api/friends/requests", nil, &incoming)
	if len(incoming) != 1 || incoming[0].ID != rel.ID {
		t.Fatalf("expected one incoming request with id %d, got %v", rel.ID, incoming)
	}

	var accepted models.Relationship
	status = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, &accepted)
	if status != http.StatusOK {
		t.Fatalf("expected 200 accepting request, got %d", status)
	}
	if accepted.Status != models.RelationshipStatusAccepted {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}

	// Both sides now see connected.
	doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", alice.ID), nil, &statusResp)
	if statusResp.Status != models.RelationshipStateConnected {
		t.Fatalf("expected connected for recipient, got %q", statusResp.Status)
	}
	viewer = alice.ID
	doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", bob.ID), nil, &statusResp)
	if statusResp.Status != models.RelationshipStateConnected {
		t.Fatalf("expected connected for sender, got %q", statusResp.Status)
	}

	var connections []models.User
	doRequest(t, app, http.MethodGet, "/api/friends/list", nil, &connections)
	if len(connections) != 1 || connections[0].ID != bob.ID {
		t.Fatalf("expected alice connected to bob, got %v", connections)
	}
}

func TestSendConnectionRequest_Conflicts(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, nil); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	// Duplicate request from the same side.
	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate request, got %d", status)
	}

	// Crossing request from the other side.
	viewer = bob.ID
	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", alice.ID), nil, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 for crossing request, got %d", status)
	}

	var count int64
	db.Model(&models.Relationship{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single relationship row, got %d", count)
	}
}

func TestSendConnectionRequest_SelfAndUnknown(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", alice.ID), nil, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for self-request, got %d", status)
	}
	if status := doRequest(t, app, http.MethodPost, "/api/friends/add/9999", nil, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown target, got %d", status)
	}
}

func TestAcceptConnectionRequest_RepeatIsNoop(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	var rel models.Relationship
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, &rel)

	viewer = bob.ID
	first := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil)
	second := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil)
	if first != http.StatusOK || second != http.StatusOK {
		t.Fatalf("expected 200 on both accepts, got %d then %d", first, second)
	}
}

func TestAcceptConnectionRequest_OnlyTargetMayAccept(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	mallory := createTestUser(t, db, "mallory")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	var rel models.Relationship
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, &rel)

	// The initiator cannot accept their own request.
	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for initiator accept, got %d", status)
	}

	viewer = mallory.ID
	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for third-party accept, got %d", status)
	}
}

func TestRejectConnectionRequest(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	var rel models.Relationship
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, &rel)

	viewer = bob.ID
	if status := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/reject/%d", rel.ID), nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 rejecting request, got %d", status)
	}

	// Rejecting an already-gone request is still a success.
	if status := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/reject/%d", rel.ID), nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 rejecting absent request, got %d", status)
	}

	// The pair is back to none and a new request can be sent.
	var statusResp struct {
		Status models.RelationshipState `json:"status"`
	}
	doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", alice.ID), nil, &statusResp)
	if statusResp.Status != models.RelationshipStateNone {
		t.Fatalf("expected none after reject, got %q", statusResp.Status)
	}

	viewer = alice.ID
	if status := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, nil); status != http.StatusCreated {
		t.Fatalf("expected 201 re-sending after reject, got %d", status)
	}
}

func TestRemoveConnection_Idempotent(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	var rel models.Relationship
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, &rel)
	viewer = bob.ID
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil)

	viewer = alice.ID
	if status := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/remove/%d", bob.ID), nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 removing connection, got %d", status)
	}
	if status := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/remove/%d", bob.ID), nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 removing absent connection, got %d", status)
	}

	var count int64
	db.Model(&models.Relationship{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no relationship rows, got %d", count)
	}
}

func TestListSentRequests(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, nil)
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", carol.ID), nil, nil)

	var sent []models.Relationship
	doRequest(t, app, http.MethodGet, "/api/friends/requests/sent", nil, &sent)
	if len(sent) != 2 {
		t.Fatalf("expected 2 sent requests, got %d", len(sent))
	}
}

func TestGetSuggestions_ExcludesRelated(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	createTestUser(t, db, "dave")

	viewer := alice.ID
	app := newTestApp(s, &viewer)

	// Pending with bob, connected with carol; only dave remains suggestible.
	var rel models.Relationship
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", bob.ID), nil, nil)
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/add/%d", carol.ID), nil, &rel)
	viewer = carol.ID
	doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", rel.ID), nil, nil)

	viewer = alice.ID
	var suggestions []models.User
	doRequest(t, app, http.MethodGet, "/api/friends/suggestions", nil, &suggestions)
	if len(suggestions) != 1 || suggestions[0].Username != "dave" {
		t.Fatalf("expected only dave suggested, got %v", suggestions)
	}
}
