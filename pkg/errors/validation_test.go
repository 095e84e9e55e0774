package errors

import "testing"

func TestValidateStationID(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr bool
	}{
		{"valid", "46042", 46042, false},
		{"valid with spaces", " 46026 ", 46026, false},
		{"empty", "", 0, true},
		{"non-numeric", "ljpc1", 0, true},
		{"negative", "-1", 0, true},
		{"zero", "0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateStationID(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStationID(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateStationID(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		coord   string
		allowed string
		wantErr bool
	}{
		{"valid latitude", "32.868N", "NS", false},
		{"valid longitude", "117.267W", "EW", false},
		{"wrong hemisphere", "32.868N", "EW", true},
		{"no hemisphere", "32.868", "NS", true},
		{"non-numeric", "northN", "NS", true},
		{"empty", "", "NS", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.coord, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%q, %q) error = %v, wantErr %v", tt.coord, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSearchDistance(t *testing.T) {
	if err := ValidateSearchDistance(250); err != nil {
		t.Errorf("ValidateSearchDistance(250) = %v, want nil", err)
	}
	if err := ValidateSearchDistance(0); err == nil {
		t.Error("ValidateSearchDistance(0) = nil, want error")
	}
	if err := ValidateSearchDistance(10000); err == nil {
		t.Error("ValidateSearchDistance(10000) = nil, want error")
	}
}
