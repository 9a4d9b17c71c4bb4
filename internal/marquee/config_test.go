package marquee

import (
	"encoding/json"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "forward", want: ForwardLoop},
		{in: "Backward", want: BackwardLoop},
		{in: "right-to-left", want: RightToLeftBounce},
		{in: " left_to_right ", want: LeftToRightBounce},
		{in: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConfigJSONNames(t *testing.T) {
	in := Config{Mode: RightToLeftBounce, Rate: 42, Alignment: AlignCenter}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["mode"] != "rightToLeft" || raw["alignment"] != "center" {
		t.Fatalf("unexpected encoding %s", b)
	}
	var out Config
	if err := json.Unmarshal([]byte(`{"mode":"leftToRight","rate":5,"alignment":"trailing"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Mode != LeftToRightBounce || out.Alignment != AlignTrailing || out.Rate != 5 {
		t.Fatalf("unexpected config %+v", out)
	}
	if err := json.Unmarshal([]byte(`{"mode":"diagonal"}`), &out); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestNormalizedFixesEnums(t *testing.T) {
	c := Config{Mode: Mode(9), Alignment: Alignment(-1), Rate: 3}.Normalized()
	if c.Mode != ForwardLoop || c.Alignment != AlignLeading {
		t.Fatalf("unexpected normalized config %+v", c)
	}
	if c.Rate != 3 {
		t.Fatalf("rate must be left to Validate, got %v", c.Rate)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if cfg.StartDelay != 1 {
		t.Fatalf("want default delay 1s, got %v", cfg.StartDelay)
	}
}
