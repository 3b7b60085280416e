// Package routes compiles the SoundBlocks routing language into per-node
// routing tables.
package routes

import "encoding/binary"

// Sensor is one of the input channels a node can report. Its value is the
// bit position used in a SensorMask.
type Sensor uint8

const (
	SensorT1 Sensor = iota
	SensorT2
	SensorT3
	SensorT4
	SensorT5
	SensorT6
	SensorT7
	SensorT8
	SensorAX
	SensorAY
	SensorAZ
	SensorGX
	SensorGY
	SensorGZ
	SensorAzimuth
	SensorBearing
	numSensors
)

var sensorNames = [numSensors]string{
	"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8",
	"ax", "ay", "az", "gx", "gy", "gz", "azimuth", "bearing",
}

func (s Sensor) String() string {
	if s < numSensors {
		return sensorNames[s]
	}
	return "unknown"
}

// Sensors returns the vocabulary in bit order.
func Sensors() []Sensor {
	out := make([]Sensor, numSensors)
	for i := range out {
		out[i] = Sensor(i)
	}
	return out
}

// LookupSensor resolves a sensor name. Names are case sensitive.
func LookupSensor(name string) (Sensor, bool) {
	for i, n := range sensorNames {
		if n == name {
			return Sensor(i), true
		}
	}
	return 0, false
}

// Action is an actuator command. Its value is the code sent on the wire.
type Action uint8

const (
	ActionPlay Action = iota
	ActionStop
	ActionSetEq
	ActionVolume
	ActionPlayFolder
	ActionPause
	numActions
)

var actionNames = [numActions]string{
	"dfPlay", "dfStop", "dfSetEq", "dfVolume", "dfPlayFolder", "dfPause",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "unknown"
}

// Actions returns the vocabulary in code order.
func Actions() []Action {
	out := make([]Action, numActions)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// LookupAction resolves an action name.
func LookupAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// SensorMask is a set of sensors, one bit per sensor.
type SensorMask uint16

// MaskOf returns the mask holding every given sensor. Order and duplicates
// do not matter.
func MaskOf(sensors ...Sensor) SensorMask {
	var m SensorMask
	for _, s := range sensors {
		m |= 1 << s
	}
	return m
}

// Has reports whether s is in the mask.
func (m SensorMask) Has(s Sensor) bool {
	return s < numSensors && m&(1<<s) != 0
}

// Sensors lists the members of the mask in bit order.
func (m SensorMask) Sensors() []Sensor {
	var out []Sensor
	for _, s := range Sensors() {
		if m.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Bytes returns the mask as two big-endian bytes (high, low).
func (m SensorMask) Bytes() (hi, lo uint8) {
	v := make([]uint8, 2)
	binary.BigEndian.PutUint16(v, uint16(m))
	return v[0], v[1]
}
