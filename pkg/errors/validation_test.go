package errors

import "testing"

func TestValidateTimeLimit(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    float64
		wantErr bool
	}{
		{name: "integer seconds", arg: "5", want: 5},
		{name: "fractional seconds", arg: "0.5", want: 0.5},
		{name: "zero rejected", arg: "0", wantErr: true},
		{name: "negative rejected", arg: "-3", wantErr: true},
		{name: "non-numeric rejected", arg: "fast", wantErr: true},
		{name: "empty rejected", arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTimeLimit(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTimeLimit(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidTimeLimit) {
					t.Errorf("expected ErrCodeInvalidTimeLimit, got %v", GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ValidateTimeLimit(%q) = %g, want %g", tt.arg, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "sphere"},
		{name: "toml file", input: "maze.toml"},
		{name: "empty", input: "", wantErr: true},
		{name: "parent traversal", input: "../etc/passwd", wantErr: true},
		{name: "double slash", input: "a//b", wantErr: true},
		{name: "backslash", input: "a\\b", wantErr: true},
		{name: "control character", input: "a\x01b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
