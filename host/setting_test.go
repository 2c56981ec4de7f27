package host

import "testing"

func TestParseSetting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Setting
		wantErr bool
	}{
		{in: "softclip.drive=6", want: Setting{Stage: "softclip", Key: "drive", Value: 6}},
		{in: "0.Balance=0.25", want: Setting{Stage: "0", Key: "balance", Value: 0.25}},
		{in: " gain.gain = -12.5", want: Setting{Stage: "gain", Key: "gain", Value: -12.5}},
		{in: "softclip.drive", wantErr: true},
		{in: "drive=6", wantErr: true},
		{in: ".drive=6", wantErr: true},
		{in: "softclip.drive=loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSetting(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSetting(%q) expected error", tt.in)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Errorf("ParseSetting(%q) = %+v, %v, want %+v", tt.in, got, err, tt.want)
		}
	}
}

func TestControlKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Drive (dB)":   "drive",
		"Shift (bits)": "shift",
		"Balance":      "balance",
		"Input L":      "input-l",
	}

	for in, want := range tests {
		if got := ControlKey(in); got != want {
			t.Errorf("ControlKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSettingString(t *testing.T) {
	t.Parallel()

	s := Setting{Stage: "flip", Key: "mode", Value: 3}
	if got := s.String(); got != "flip.mode=3" {
		t.Fatalf("String() = %q", got)
	}
}
