package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"VIEW","payload":{"tags":4}}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Command != CommandView {
		t.Errorf("command = %q, want VIEW", req.Command)
	}
	var payload ViewPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Tags != 4 {
		t.Errorf("tags = %d, want 4", payload.Tags)
	}
}

func TestParseRequestRejectsGarbage(t *testing.T) {
	if _, err := ParseRequest([]byte("not json")); err == nil {
		t.Error("ParseRequest accepted malformed input")
	}
}

func TestNewOKResponse(t *testing.T) {
	resp, err := NewOKResponse(StatusData{Version: "0.3.0", ClientCount: 2})
	if err != nil {
		t.Fatalf("NewOKResponse: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("status = %q, want OK", resp.Status)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var round Response
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	var status StatusData
	if err := json.Unmarshal(round.Data, &status); err != nil {
		t.Fatalf("data: %v", err)
	}
	if status.Version != "0.3.0" || status.ClientCount != 2 {
		t.Errorf("status data = %+v", status)
	}
}

func TestNewOKResponseWithoutData(t *testing.T) {
	resp, err := NewOKResponse(nil)
	if err != nil {
		t.Fatalf("NewOKResponse: %v", err)
	}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"status":"OK"}` {
		t.Errorf("marshaled = %s, want the data field omitted", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("no such tag")
	if resp.Status != "ERROR" || resp.Error != "no such tag" {
		t.Errorf("response = %+v", resp)
	}
}
