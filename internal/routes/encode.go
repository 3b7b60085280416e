package routes

// SendRecord is the wire form of a SendRule: mask-hi, mask-lo and three
// (low, high) range pairs, unused pairs zero.
type SendRecord [8]int

// ReceiveRecord is the wire form of a ReceiveRule: sensor index, source node,
// action code, map-low, map-high.
type ReceiveRecord [5]int

// Encode returns the wire record for the rule.
func (r SendRule) Encode() SendRecord {
	var rec SendRecord
	hi, lo := r.Sensors.Bytes()
	rec[0], rec[1] = int(hi), int(lo)
	for i, rg := range r.Ranges {
		rec[2+2*i] = int(rg.Low)
		rec[3+2*i] = int(rg.High)
	}
	return rec
}

// Encode returns the wire record for the rule.
func (r ReceiveRule) Encode() ReceiveRecord {
	return ReceiveRecord{int(r.Sensor), r.Source, int(r.Action), r.MapLow, r.MapHigh}
}

// Ints returns the record as a slice.
func (r SendRecord) Ints() []int {
	return r[:]
}

// Ints returns the record as a slice.
func (r ReceiveRecord) Ints() []int {
	return r[:]
}
