package ipc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRequest(t *testing.T) {
	data := []byte(`{"command":"OPEN_WINDOW","payload":{"id":"notes-1"}}` + "\n")
	req, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Command != CommandOpenWindow {
		t.Errorf("Command = %q, want %q", req.Command, CommandOpenWindow)
	}

	var p OpenWindowPayload
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		t.Fatalf("payload unmarshal error = %v", err)
	}
	if p.ID != "notes-1" {
		t.Errorf("payload ID = %q, want notes-1", p.ID)
	}
}

func TestParseRequestInvalid(t *testing.T) {
	if _, err := ParseRequest([]byte("{not json")); err == nil {
		t.Error("ParseRequest() with malformed JSON = nil error")
	}
}

func TestOKResponseRoundTrip(t *testing.T) {
	resp, err := NewOKResponse(WindowOpData{ID: "notes-1", Found: true, Created: true, ZIndex: 101})
	if err != nil {
		t.Fatalf("NewOKResponse() error = %v", err)
	}

	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if decoded.Status != "OK" {
		t.Errorf("Status = %q, want OK", decoded.Status)
	}

	var op WindowOpData
	if err := json.Unmarshal(decoded.Data, &op); err != nil {
		t.Fatalf("data unmarshal error = %v", err)
	}
	if op.ID != "notes-1" || !op.Created || op.ZIndex != 101 {
		t.Errorf("op data = %+v", op)
	}
}

func TestErrorResponse(t *testing.T) {
	resp := NewErrorResponse("id is required")
	if resp.Status != "ERROR" {
		t.Errorf("Status = %q, want ERROR", resp.Status)
	}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "id is required") {
		t.Errorf("marshaled error missing message: %s", data)
	}
}
