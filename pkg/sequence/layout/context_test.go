package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.MessageSpacing != 50 || c.LifelineHeader != 30 || c.LifelineYPos != 10 {
		t.Errorf("vertical spacing = %v/%v/%v, want 50/30/10", c.MessageSpacing, c.LifelineHeader, c.LifelineYPos)
	}
	if c.LifelineSpacing != 50 || c.BorderSpacing != 12 {
		t.Errorf("horizontal spacing = %v/%v, want 50/12", c.LifelineSpacing, c.BorderSpacing)
	}
	if c.LabelSpacing != 5 || c.LabelMargin != 10 {
		t.Errorf("label spacing = %v/%v, want 5/10", c.LabelSpacing, c.LabelMargin)
	}
	if c.LabelAlignment != AlignSourceCenter {
		t.Errorf("LabelAlignment = %v, want source_center", c.LabelAlignment)
	}
	if c.Order != nil || c.Root != nil {
		t.Error("Default should leave Order and Root unset")
	}
}

func TestIndexOf(t *testing.T) {
	c := Context{Order: []sgraph.LifelineID{3, 1, 2}}
	tests := []struct {
		id   sgraph.LifelineID
		want int
	}{
		{3, 0},
		{1, 1},
		{2, 2},
		{0, -1},
	}
	for _, tt := range tests {
		if got := c.IndexOf(tt.id); got != tt.want {
			t.Errorf("IndexOf(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	g := sgraph.New()
	a := g.AddLifeline(sgraph.Lifeline{Name: "a"})
	b := g.AddLifeline(sgraph.Lifeline{Name: "b", Slot: 1})
	root := &sgraph.Rect{}

	valid := func() Context {
		c := Default()
		c.Order = []sgraph.LifelineID{a, b}
		c.Root = root
		return c
	}

	tests := []struct {
		name   string
		modify func(*Context)
		want   error
	}{
		{"Valid", func(*Context) {}, nil},
		{"EmptyOrder", func(c *Context) { c.Order = nil }, ErrEmptyOrder},
		{"MissingRoot", func(c *Context) { c.Root = nil }, ErrMissingRoot},
		{"UnknownEntry", func(c *Context) { c.Order = append(c.Order, 5) }, ErrUnknownOrderEntry},
		{"DuplicateEntry", func(c *Context) { c.Order = append(c.Order, c.Order[0]) }, ErrDuplicateOrderEntry},
		{"NegativeSpacing", func(c *Context) { c.MessageSpacing = -1 }, ErrInvalidSpacing},
		{"NaNSpacing", func(c *Context) { c.LabelMargin = math.NaN() }, ErrInvalidSpacing},
		{"BadAlignment", func(c *Context) { c.LabelAlignment = Alignment(9) }, ErrUnknownAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.Validate(g)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Alignment
		wantErr bool
	}{
		{"", AlignSourceCenter, false},
		{"source", AlignSource, false},
		{"SOURCE_CENTER", AlignSourceCenter, false},
		{"source-center", AlignSourceCenter, false},
		{" center ", AlignCenter, false},
		{"left", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlignment(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlignment(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrUnknownAlignment) {
					t.Errorf("error %v does not wrap ErrUnknownAlignment", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAlignmentText(t *testing.T) {
	var a Alignment
	if err := a.UnmarshalText([]byte("center")); err != nil {
		t.Fatal(err)
	}
	b, err := a.MarshalText()
	if err != nil || string(b) != "center" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if _, err := Alignment(-1).MarshalText(); err == nil {
		t.Error("expected error for invalid alignment")
	}
}
