package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
	"github.com/tosih/injector-calc/pkg/sweep"
)

func init() {
	pterm.DisableOutput()
}

func newFS() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(discard{})
	return fs
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opt, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opt
}

func TestDefaults(t *testing.T) {
	o := mustParse(t)
	if o.Mode != ModeCalc || len(o.Fields) != 0 || o.NoDeadTime {
		t.Errorf("unexpected defaults %+v", o)
	}
	if len(o.Quantities) != 1 || o.Quantities[0] != sweep.DutyCycle {
		t.Errorf("default quantity %v", o.Quantities)
	}
}

func TestOnlySetFieldsOverride(t *testing.T) {
	o := mustParse(t, "-fuel", "e85", "-displacement", "abc", "-rpm", "7000")
	if len(o.Fields) != 3 || o.Fields["displacement"] != "abc" || o.Fields["fuel"] != "e85" {
		t.Errorf("fields = %v", o.Fields)
	}
}

func TestQuantityAll(t *testing.T) {
	o := mustParse(t, "-mode", "map", "-quantity", "all")
	if len(o.Quantities) != 3 {
		t.Errorf("quantities = %v", o.Quantities)
	}
}

func TestParseErrors(t *testing.T) {
	cases := [][]string{
		{"-mode", "simulate"},
		{"-mode", "compare"},
		{"-mode", "export"},
		{"-display", "3d"},
		{"-quantity", "afr"},
		{"-limit", "0"},
		{"-nosuchflag"},
	}
	for _, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestLoadInputInvalidDisplacement(t *testing.T) {
	_, err := loadInput("", map[string]string{models.KeyDisplacement: "abc"})
	if !errors.Is(err, calc.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestLoadInputProfileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	if err := os.WriteFile(path, []byte(`{"fuel": "methanol", "rpm": 5000}`), 0644); err != nil {
		t.Fatal(err)
	}
	in, err := loadInput(path, map[string]string{models.KeyRPM: "7200"})
	if err != nil {
		t.Fatal(err)
	}
	if in.Fuel != models.Methanol || in.RPM != 7200 {
		t.Errorf("got %+v", in)
	}
}

func TestRunModes(t *testing.T) {
	dir := t.TempDir()
	cases := [][]string{
		{},
		{"-no-deadtime"},
		{"-mode", "fuels"},
		{"-mode", "inputs"},
		{"-mode", "map", "-quantity", "all", "-display", "heatmap"},
		{"-mode", "compare", "-vs-fuel", "e85"},
		{"-mode", "export", "-export-dir", dir, "-xlsx", filepath.Join(dir, "maps.xlsx")},
	}
	for _, args := range cases {
		if err := run(mustParse(t, args...)); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
	for _, name := range []string{"result.csv", "maps.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRunCompareUnknownFuel(t *testing.T) {
	err := run(mustParse(t, "-mode", "compare", "-vs-fuel", "diesel"))
	if !errors.Is(err, calc.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}
