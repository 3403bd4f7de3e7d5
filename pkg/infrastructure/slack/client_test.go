package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"apifiny/pkg/infrastructure/slack"
)

func TestClient_Notify(t *testing.T) {
	tests := map[string]struct {
		status  int
		wantErr bool
	}{
		"ok":          {status: http.StatusOK},
		"bad request": {status: http.StatusBadRequest, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got slack.TextMessage
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := slack.NewClient(srv.URL, nil).Notify(context.Background(), "fetch failed: %s", "BINANCE")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Notify() error is wrong\nwantErr: %v\ngot: %v", tt.wantErr, err)
			}
			if want := "fetch failed: BINANCE"; got.Text != want {
				t.Errorf("text is wrong\nwant: %s\ngot: %s", want, got.Text)
			}
		})
	}
}
