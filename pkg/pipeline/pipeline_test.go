package pipeline

import (
	"testing"

	"github.com/gitlite/flowgraph/pkg/errors"
	"github.com/gitlite/flowgraph/pkg/flow"
	"github.com/gitlite/flowgraph/pkg/graph"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	d := graph.DefaultParams()
	if opts.RowHeight != d.RowHeight || opts.MaxWidth != d.MaxWidth {
		t.Errorf("geometry defaults not applied: %+v", opts)
	}
	if opts.FallbackLabel != flow.DefaultFallbackLabel {
		t.Errorf("FallbackLabel = %q, want %q", opts.FallbackLabel, flow.DefaultFallbackLabel)
	}
	if opts.MaxGroupSize != flow.DefaultMaxGroupSize {
		t.Errorf("MaxGroupSize = %d, want %d", opts.MaxGroupSize, flow.DefaultMaxGroupSize)
	}
	if opts.Window != flow.DefaultWindow {
		t.Errorf("Window = %d, want %d", opts.Window, flow.DefaultWindow)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}
}

func TestOptionsValidateRejectsNegatives(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative row height", Options{RowHeight: -1}},
		{"negative max width", Options{MaxWidth: -10}},
		{"negative group size", Options{MaxGroupSize: -1}},
		{"negative window", Options{Window: -60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("want INVALID_OPTIONS, got %v", err)
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Window: 600}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	first := opts

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation: %v", err)
	}
	if opts.Window != first.Window || opts.RowHeight != first.RowHeight {
		t.Errorf("repeat validation changed options: %+v vs %+v", opts, first)
	}
}

func TestOptionsUserValuesKept(t *testing.T) {
	opts := Options{RowHeight: 40, Window: 600, FallbackLabel: "unknown"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validation: %v", err)
	}

	if opts.RowHeight != 40 {
		t.Errorf("RowHeight = %v, want user value 40", opts.RowHeight)
	}
	if opts.Window != 600 {
		t.Errorf("Window = %d, want user value 600", opts.Window)
	}
	if opts.FallbackLabel != "unknown" {
		t.Errorf("FallbackLabel = %q, want user value", opts.FallbackLabel)
	}
}

func TestOptionsKeyOptsMapping(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	opts.SetFlowDefaults()

	lk := opts.LayoutKeyOpts()
	if lk.RowHeight != opts.RowHeight || lk.MaxWidth != opts.MaxWidth {
		t.Errorf("LayoutKeyOpts mismatch: %+v vs %+v", lk, opts)
	}

	fk := opts.FlowKeyOpts()
	if fk.Window != opts.Window || fk.MaxGroupSize != opts.MaxGroupSize || fk.FallbackLabel != opts.FallbackLabel {
		t.Errorf("FlowKeyOpts mismatch: %+v vs %+v", fk, opts)
	}
}

func TestOptionsParams(t *testing.T) {
	opts := Options{RowHeight: 30}
	p := opts.Params()

	if p.RowHeight != 30 {
		t.Errorf("Params.RowHeight = %v, want 30", p.RowHeight)
	}
	if p.LaneWidth != graph.DefaultParams().LaneWidth {
		t.Errorf("Params.LaneWidth should default, got %v", p.LaneWidth)
	}
}
