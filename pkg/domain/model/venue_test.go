package model_test

import (
	"fmt"
	"strings"
	"testing"

	"apifiny/pkg/domain/model"
)

func TestLookupVenue(t *testing.T) {
	tests := map[string]struct {
		name    string
		want    string
		wantErr bool
	}{
		"binance": {
			name: "BINANCE",
			want: "https://apibn.apifiny.com/ac/v2",
		},
		"coinbase pro": {
			name: "COINBASEPRO",
			want: "https://apicb.apifiny.com/ac/v2",
		},
		"okcoin": {
			name: "OKCOIN",
			want: "https://apiokc.apifiny.com/ac/v2",
		},
		"lower case is not matched": {
			name:    "binance",
			wantErr: true,
		},
		"unknown": {
			name:    "BITFLYER",
			wantErr: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.LookupVenue(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("LookupVenue() must return error, got: %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupVenue() error: %v", err)
			}
			if got.Name != tt.name || got.Rest != tt.want {
				t.Errorf("LookupVenue() is wrong\nwant: %s %s\ngot: %s %s", tt.name, tt.want, got.Name, got.Rest)
			}
		})
	}
}

func TestVenues(t *testing.T) {
	vv := model.Venues()
	if len(vv) != 8 {
		t.Fatalf("venue count is wrong\nwant: 8\ngot: %d", len(vv))
	}
	vv[0].Rest = "http://changed"
	if model.Venues()[0].Rest == "http://changed" {
		t.Error("Venues() must return a copy")
	}
	for _, v := range vv[1:] {
		if !strings.HasPrefix(v.Rest, "https://") || !strings.HasSuffix(v.Rest, "/ac/v2") {
			t.Errorf("rest url is wrong, venue: %s, url: %s", v.Name, v.Rest)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    model.Period
		wantErr bool
	}{
		"1 minute": {in: "1m", want: model.Minute1},
		"1 month":  {in: "1M", want: model.Month1},
		"4 hours":  {in: "4h", want: model.Hour4},
		"unknown":  {in: "2m", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.ParsePeriod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod() error is wrong\nwantErr: %v\ngot: %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod() is wrong\nwant: %s\ngot: %s", tt.want, got)
			}
		})
	}
}

func TestCredential_String(t *testing.T) {
	cred := model.Credential{AccessKey: "my-access", SecretKey: "my-secret", AccountID: "STA-1"}
	for _, s := range []string{
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%+v", cred),
		fmt.Sprintf("%#v", cred),
		fmt.Sprintf("%s", &cred),
	} {
		if strings.Contains(s, "my-access") || strings.Contains(s, "my-secret") {
			t.Errorf("credential is leaked, got: %s", s)
		}
		if !strings.Contains(s, "STA-1") {
			t.Errorf("account id is missing, got: %s", s)
		}
	}
}
