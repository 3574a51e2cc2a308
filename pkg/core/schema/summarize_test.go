// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"testing"
)

func TestSummaryResponse_NullFields(t *testing.T) {
	tests := []struct {
		name string
		resp SummaryResponse
		want string
	}{
		{"success", Success("done"), `{"ok":true,"summary":"done","error":null}`},
		{"failure", Failure(NoTextMessage), `{"ok":false,"summary":null,"error":"No text available for summarization"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestSummaryRequest_MissingText(t *testing.T) {
	var req SummaryRequest
	if err := json.Unmarshal([]byte(`{"level":"short"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Text != nil {
		t.Errorf("Text = %q, want nil", *req.Text)
	}
	if req.Level != "short" {
		t.Errorf("Level = %q", req.Level)
	}
}
