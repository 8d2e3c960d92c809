package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1.5", 1.5, false},
		{"1,5", 1.5, false},
		{"  42 ", 42, false},
		{"1e13", 1e13, false},
		{"-2,25e-3", -2.25e-3, false},
		{"abc", 0, true},
		{"", 0, true},
		{"1,000.5", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"-Infinity", 0, true},
		{"1e400", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFloat("mass", tt.in)
		if tt.wantErr {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("%q: expected ParseError, got %v", tt.in, err)
				continue
			}
			if pe.Field != "mass" || pe.Value != tt.in {
				t.Errorf("%q: unexpected error fields %+v", tt.in, pe)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseBodyTable(t *testing.T) {
	in := `mass,radius,x,y,z,vx,vy,vz,color
1e13,1,100,0,0,0,2,0,red
2e13,0.5,0,100,0,0,0,2,blue
`
	bodies, err := ParseBodyTable(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	want := BodyConfig{Mass: 2e13, Radius: 0.5, Position: [3]float64{0, 100, 0}, Velocity: [3]float64{0, 0, 2}, Color: "blue"}
	if bodies[1] != want {
		t.Errorf("got %+v, want %+v", bodies[1], want)
	}
}

func TestParseBodyTableSemicolons(t *testing.T) {
	in := "vx;vy;vz;x;y;z;radius;mass\n0;1,5;0;10;0;0;0,25;3e10\n"
	bodies, err := ParseBodyTable(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	b := bodies[0]
	if b.Mass != 3e10 || b.Radius != 0.25 || b.Velocity[1] != 1.5 || b.Position[0] != 10 {
		t.Errorf("unexpected %+v", b)
	}
}

func TestParseBodyTableErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"missing column", "mass,radius,x,y,z,vx,vy\n1,1,0,0,0,0,0\n", dynamo.ErrDimensionMismatch},
		{"short row", "mass,radius,x,y,z,vx,vy,vz\n1,1,0,0\n", dynamo.ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBodyTable(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	_, err := ParseBodyTable(strings.NewReader("mass,radius,x,y,z,vx,vy,vz\nheavy,1,0,0,0,0,0,0\n"))
	var pe *ParseError
	if !errors.As(err, &pe) || !strings.Contains(pe.Field, "mass") {
		t.Errorf("expected ParseError on mass, got %v", err)
	}
}
