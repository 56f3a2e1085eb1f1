package http

import "testing"

func TestParseToolCallLastCallWins(t *testing.T) {
	body := []byte(`{"message":{"toolCalls":[
		{"id":"first","function":{"arguments":{"username":"a"}}},
		{"id":"second","function":{"arguments":{"username":"b"}}}
	]}}`)

	tc, err := ParseToolCall(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tc.ID != "second" {
		t.Errorf("ID = %q, want %q", tc.ID, "second")
	}
	if got := tc.Get("username"); got != "b" {
		t.Errorf("username = %q, want %q", got, "b")
	}
}

func TestParseToolCallMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"empty object", `{}`},
		{"no tool calls", `{"message":{"toolCalls":[]}}`},
		{"wrong shape", `{"message":"hello"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToolCall([]byte(tt.body)); err != ErrMalformedEnvelope {
				t.Errorf("err = %v, want ErrMalformedEnvelope", err)
			}
		})
	}
}

func TestParseToolCallMissingArguments(t *testing.T) {
	tc, err := ParseToolCall([]byte(`{"message":{"toolCalls":[{"id":"c1","function":{}}]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tc.Has("anything") {
		t.Error("Has should be false with no arguments")
	}
	if got := tc.Get("anything"); got != "" {
		t.Errorf("Get = %q, want empty", got)
	}
}

func TestToolCallGetRendersScalars(t *testing.T) {
	tc, err := ParseToolCall([]byte(`{"message":{"toolCalls":[{"id":"c1","function":{"arguments":{
		"amount":12.5,
		"count":3,
		"flag":true,
		"padded":"  hi  ",
		"empty":""
	}}}]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"amount", "12.5"},
		{"count", "3"},
		{"flag", "true"},
		{"padded", "hi"},
		{"empty", ""},
	}
	for _, tt := range tests {
		if got := tc.Get(tt.key); got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestToolCallHasPresenceOnly(t *testing.T) {
	tc, _ := ParseToolCall([]byte(`{"message":{"toolCalls":[{"id":"c1","function":{"arguments":{"notes":""}}}]}}`))
	if !tc.Has("notes") {
		t.Error("presence check must not look at the value")
	}
	if !tc.HasAll("notes") {
		t.Error("HasAll with present key")
	}
	if tc.HasAll("notes", "amount") {
		t.Error("HasAll with absent key")
	}
}

func TestArgOrPresenceWins(t *testing.T) {
	tc, _ := ParseToolCall([]byte(`{"message":{"toolCalls":[{"id":"c1","function":{"arguments":{"new_notes":""}}}]}}`))
	if got := tc.argOr("new_notes", "old"); got != "" {
		t.Errorf("present empty value = %q, want empty", got)
	}
	if got := tc.argOr("new_amount", "42"); got != "42" {
		t.Errorf("absent key = %q, want fallback", got)
	}
}
