package reader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tosih/injector-calc/pkg/models"
)

// rawProfile mirrors the profile JSON. Numbers are kept as json.Number so
// they reach ParseInput as the text the user wrote.
type rawProfile struct {
	Fuel         string      `json:"fuel"`
	Engine       string      `json:"engine"`
	Cylinders    json.Number `json:"cylinders"`
	Displacement json.Number `json:"displacement"`
	Injector     json.Number `json:"injector"`
	RPM          json.Number `json:"rpm"`
	VE           json.Number `json:"ve"`
	MAP          json.Number `json:"map"`
	Lambda       json.Number `json:"lambda"`
	IAT          json.Number `json:"iat"`
	Voltage      json.Number `json:"voltage"`
}

// ReadProfile loads an engine profile and parses it like form input
func ReadProfile(filename string) (models.EngineInput, error) {
	f, err := os.Open(filename)
	if err != nil {
		return models.EngineInput{}, err
	}
	defer f.Close()

	var raw rawProfile
	dec := json.NewDecoder(f)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return models.EngineInput{}, fmt.Errorf("decode profile %s: %w", filename, err)
	}

	return ParseInput(raw.fields())
}

func (r rawProfile) fields() map[string]string {
	return map[string]string{
		models.KeyFuel:         r.Fuel,
		models.KeyEngine:       r.Engine,
		models.KeyCylinders:    r.Cylinders.String(),
		models.KeyDisplacement: r.Displacement.String(),
		models.KeyInjector:     r.Injector.String(),
		models.KeyRPM:          r.RPM.String(),
		models.KeyVE:           r.VE.String(),
		models.KeyMAP:          r.MAP.String(),
		models.KeyLambda:       r.Lambda.String(),
		models.KeyIAT:          r.IAT.String(),
		models.KeyVoltage:      r.Voltage.String(),
	}
}
