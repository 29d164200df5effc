package http

import (
	"net/http"
	"testing"

	"github.com/DRSN-tech/catalog-service/pkg/e"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "integer", in: "600", want: 60000},
		{name: "two decimals", in: "19.99", want: 1999},
		{name: "one decimal", in: "7.5", want: 750},
		{name: "zero", in: "0", want: 0},
		{name: "empty", in: "", wantErr: e.ErrInvalidPrice},
		{name: "spaces only", in: "   ", wantErr: e.ErrInvalidPrice},
		{name: "not a number", in: "abc", wantErr: e.ErrInvalidPrice},
		{name: "negative", in: "-1", wantErr: e.ErrInvalidPrice},
		{name: "three decimals", in: "19.999", wantErr: e.ErrPricePrecision},
		{name: "over limit", in: "1000000001", wantErr: e.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePriceToCents(tc.in)
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d cents, got %d", tc.want, got)
			}
		})
	}
}

func TestToHTTPResponse(t *testing.T) {
	code, msg := ToHTTPResponse(e.ErrProductNotFound)
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	if msg != "Product not found" {
		t.Errorf("expected fixed message, got %q", msg)
	}

	code, msg = ToHTTPResponse(e.Wrap("handler context", e.ErrInvalidFileType))
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if msg != e.ErrInvalidFileType.Error() {
		t.Errorf("wrap context leaked into client message: %q", msg)
	}

	code, msg = ToHTTPResponse(e.Wrap("pgdb", e.Wrap("pool", e.ErrInternalServerError)))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if msg != e.ErrInternalServerError.Error() {
		t.Errorf("internal detail leaked: %q", msg)
	}
}
