package form

import (
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/tosih/injector-calc/pkg/calc"
	"github.com/tosih/injector-calc/pkg/models"
)

func init() {
	pterm.DisableOutput()
}

// scripted answers prompts from fixed maps and records what it was asked
type scripted struct {
	selects  map[string]string
	texts    map[string]string
	confirms []bool
	asked    []string
	defaults map[string]string
}

func (s *scripted) Select(label string, options []string, def string) (string, error) {
	s.asked = append(s.asked, label)
	if v, ok := s.selects[label]; ok {
		return v, nil
	}
	return def, nil
}

func (s *scripted) Text(label, def string) (string, error) {
	s.asked = append(s.asked, label)
	if s.defaults == nil {
		s.defaults = map[string]string{}
	}
	s.defaults[label] = def
	if v, ok := s.texts[label]; ok {
		return v, nil
	}
	return def, nil
}

func (s *scripted) Confirm(label string) (bool, error) {
	if len(s.confirms) == 0 {
		return false, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func labelFor(t *testing.T, key string) string {
	t.Helper()
	p, ok := models.FindParam(key)
	if !ok {
		t.Fatalf("no param %q", key)
	}
	return promptLabel(p)
}

func TestCollectAsksEveryField(t *testing.T) {
	p := &scripted{selects: map[string]string{"Fuel Type": "Methanol"}}
	fields, err := Collect(p, models.DefaultInput())
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 + len(models.InputParams); len(p.asked) != want {
		t.Errorf("asked %d prompts, want %d: %v", len(p.asked), want, p.asked)
	}
	if fields[models.KeyFuel] != "Methanol" || fields[models.KeyDisplacement] != "2000" {
		t.Errorf("unexpected fields %v", fields)
	}
	if got := p.defaults[labelFor(t, models.KeyVoltage)]; got != "13.8" {
		t.Errorf("voltage default = %q", got)
	}
}

func TestPromptLabel(t *testing.T) {
	if got := labelFor(t, models.KeyDisplacement); got != "Engine Displacement in cc (500-8000)" {
		t.Errorf("label = %q", got)
	}
	if got := labelFor(t, models.KeyCylinders); got != "Cylinders (1-16)" {
		t.Errorf("label = %q", got)
	}
}

func TestRunRecoversFromInvalidInput(t *testing.T) {
	p := &scripted{
		texts:    map[string]string{labelFor(t, models.KeyDisplacement): "abc"},
		confirms: []bool{false},
	}
	if err := Run(p, models.DefaultInput(), calc.DefaultOptions()); err != nil {
		t.Fatalf("invalid input should be reported, not returned: %v", err)
	}
}

func TestRunKeepsLastInputAsDefaults(t *testing.T) {
	rpm := labelFor(t, models.KeyRPM)
	p := &scripted{
		texts:    map[string]string{rpm: "7000"},
		confirms: []bool{true, false},
	}
	if err := Run(p, models.DefaultInput(), calc.DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if got := p.defaults[rpm]; got != "7000" {
		t.Errorf("second round default = %q, want 7000", got)
	}
}

type failing struct{ scripted }

func (failing) Select(string, []string, string) (string, error) {
	return "", errors.New("interrupted")
}

func TestRunReturnsPromptErrors(t *testing.T) {
	if err := Run(&failing{}, models.DefaultInput(), calc.DefaultOptions()); err == nil {
		t.Errorf("prompt failure should be returned")
	}
}
