package jsons_test

import (
	"reflect"
	"testing"

	"github.com/cinatic/jsons"
	"gotest.tools/v3/assert"
)

type Sensor interface {
	Unit() string
}

type Thermometer struct {
	Celsius bool `json:"celsius"`
}

func (t Thermometer) Unit() string { return "temperature" }

type Barometer struct {
	Altitude int `json:"altitude"`
}

func (b Barometer) Unit() string { return "pressure" }

type Probe struct {
	Primary Sensor `json:"primary"`
	Backup  Sensor `json:"backup"`
}

type Station struct {
	Name   string  `json:"name"`
	Probes []Probe `json:"probes"`
}

type Payload struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

func init() {
	jsons.RegisterType(Thermometer{}, Barometer{}, Probe{})
}

// Several interface fields of the same object keep separate hint paths.
func TestSiblingHints(t *testing.T) {
	probe := Probe{
		Primary: Thermometer{Celsius: true},
		Backup:  Barometer{Altitude: 300},
	}
	dumped, err := jsons.Dump(probe, nil)
	assert.NilError(t, err)

	dict := dumped.(map[string]any)
	classes := dict["-meta"].(map[string]any)["classes"].(map[string]any)
	assert.Equal(t, classes["/primary"], "jsons_test.thermometer")
	assert.Equal(t, classes["/backup"], "jsons_test.barometer")

	loaded, err := jsons.Load(dumped, reflect.TypeOf(Probe{}), nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, probe)
}

// Hint paths do not reach through collections; each element carries its
// own metadata instead.
func TestElementsCarryTheirOwnMetadata(t *testing.T) {
	station := Station{
		Name: "alpine",
		Probes: []Probe{
			{Primary: Thermometer{Celsius: true}, Backup: Barometer{Altitude: 300}},
			{Primary: Barometer{Altitude: 100}, Backup: Thermometer{Celsius: false}},
		},
	}
	dumped, err := jsons.Dump(station, nil)
	assert.NilError(t, err)

	dict := dumped.(map[string]any)
	_, hasTopMeta := dict["-meta"]
	assert.Equal(t, hasTopMeta, false, "The slice breaks the hint chain, the station itself has nothing to record")

	probes := dict["probes"].([]any)
	first := probes[0].(map[string]any)
	classes := first["-meta"].(map[string]any)["classes"].(map[string]any)
	assert.Equal(t, classes["/primary"], "jsons_test.thermometer")

	loaded, err := jsons.Load(dumped, reflect.TypeOf(Station{}), nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, station)
}

// The metadata of the input is consulted, never removed.
func TestLoadKeepsInputIntact(t *testing.T) {
	value := map[string]any{
		"primary": map[string]any{"celsius": true},
		"backup":  map[string]any{"altitude": float64(300)},
		"-meta": map[string]any{"classes": map[string]any{
			"/primary": "jsons_test.thermometer",
			"/backup":  "jsons_test.barometer",
		}},
	}

	_, err := jsons.Load(value, reflect.TypeOf(Probe{}), nil)
	assert.NilError(t, err)

	_, present := value["-meta"]
	assert.Equal(t, present, true, "Loading should not mutate the input")
}

// Verbose walks the whole graph, so a nested dump can be reloaded
// without declaring anything.
func TestVerboseDeepRoundTrip(t *testing.T) {
	jsons.RegisterType(Station{})
	station := Station{
		Name: "alpine",
		Probes: []Probe{
			{Primary: Thermometer{Celsius: true}, Backup: Barometer{Altitude: 300}},
		},
	}

	dumped, err := jsons.Dump(station, &jsons.Options{Verbose: true})
	assert.NilError(t, err)

	loaded, err := jsons.Load(dumped, nil, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, station)
}

// Strict loads accept the reserved key, it is part of the protocol.
func TestStrictToleratesMetadata(t *testing.T) {
	probe := Probe{
		Primary: Thermometer{Celsius: true},
		Backup:  Barometer{Altitude: 300},
	}
	dumped, err := jsons.Dump(probe, nil)
	assert.NilError(t, err)

	loaded, err := jsons.Load(dumped, reflect.TypeOf(Probe{}), jsons.StrictOptions())
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, probe)
}

// A map field is copied as data. The reserved key inside one belongs to
// the user and must neither move to the parent nor disappear.
func TestMapFieldKeepsReservedKey(t *testing.T) {
	payload := Payload{
		Name: "snapshot",
		Data: map[string]any{
			"value": float64(1),
			"-meta": map[string]any{"classes": map[string]any{"/": "not.a.hint"}},
		},
	}

	dumped, err := jsons.Dump(payload, nil)
	assert.NilError(t, err)

	dict := dumped.(map[string]any)
	_, hoisted := dict["-meta"]
	assert.Equal(t, hoisted, false, "A map child has no metadata to hoist")
	data := dict["data"].(map[string]any)
	assert.DeepEqual(t, data["-meta"], map[string]any{"classes": map[string]any{"/": "not.a.hint"}})

	loaded, err := jsons.Load(dumped, reflect.TypeOf(Payload{}), nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, payload)
}
