package routes

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// MaxRanges is the number of target ID ranges a send rule can carry.
const MaxRanges = 3

// MaxNodeID is the largest addressable node, the last octet of the subnet.
const MaxNodeID = 255

// NodeID identifies a node on the subnet.
type NodeID uint8

// IDRange is an inclusive span of node IDs.
type IDRange struct {
	Low  NodeID
	High NodeID
}

// SendRule says that Source broadcasts Sensors to the nodes in Ranges.
type SendRule struct {
	Source  NodeID
	Sensors SensorMask
	Ranges  [MaxRanges]IDRange
	Count   int // number of ranges given, 1..MaxRanges
}

// ReceiveRule maps a sensor value coming from Source onto an action at Dest.
type ReceiveRule struct {
	Dest    NodeID
	Sensor  Sensor
	Source  int
	Action  Action
	MapLow  int
	MapHigh int
}

var (
	sendRe    = regexp.MustCompile(`^(\d{1,3})->(.*):(.*)$`)
	receiveRe = regexp.MustCompile(`^(\d*)<-(.*):(\d{1,3})@(.*)\[(.*),(.*)\]`)
)

// ParseSend parses `ID->sensor[,sensor...]:range[,range...][#comment]`.
func ParseSend(line string) (SendRule, error) {
	var rule SendRule

	m := sendRe.FindStringSubmatch(line)
	if m == nil {
		return rule, syntaxErr("send ID must be a number")
	}
	id, err := parseNodeID(m[1])
	if err != nil {
		return rule, err
	}
	rule.Source = id

	if m[2] == "" {
		return rule, semanticErr("sensor list cannot be empty")
	}
	for _, name := range strings.Split(m[2], ",") {
		s, ok := LookupSensor(name)
		if !ok {
			return rule, semanticErr("invalid sensor")
		}
		rule.Sensors |= MaskOf(s)
	}

	if m[3] == "" {
		return rule, syntaxErr("receive ID must be a number")
	}
	targets := strings.TrimSpace(strings.SplitN(m[3], "#", 2)[0])
	tokens := strings.Split(targets, ",")
	if len(tokens) > MaxRanges {
		return rule, capacityErr("maximum 3 ID ranges")
	}
	for i, tok := range tokens {
		r, err := parseRange(tok)
		if err != nil {
			return rule, err
		}
		rule.Ranges[i] = r
	}
	rule.Count = len(tokens)

	return rule, nil
}

// ParseReceive parses `ID<-sensor:src@action[low,high]`.
func ParseReceive(line string) (ReceiveRule, error) {
	var rule ReceiveRule

	m := receiveRe.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return rule, syntaxErr("receive ID must be a number")
	}
	id, err := parseNodeID(m[1])
	if err != nil {
		return rule, err
	}
	rule.Dest = id

	s, ok := LookupSensor(m[2])
	if !ok {
		return rule, semanticErr("invalid sensor")
	}
	rule.Sensor = s

	// \d{1,3} guarantees a number.
	rule.Source, _ = strconv.Atoi(m[3])

	if m[4] == "" {
		return rule, semanticErr("action cannot be empty")
	}
	a, ok := LookupAction(m[4])
	if !ok {
		return rule, semanticErr("invalid action")
	}
	rule.Action = a

	if rule.MapLow, err = parseMapBound(m[5]); err != nil {
		return rule, err
	}
	if rule.MapHigh, err = parseMapBound(m[6]); err != nil {
		return rule, err
	}

	return rule, nil
}

func parseRange(tok string) (IDRange, error) {
	parts := strings.Split(tok, "-")
	if len(parts) > 2 {
		return IDRange{}, syntaxErr("invalid ID range")
	}
	if len(parts) == 1 {
		if !isDigits(parts[0]) {
			return IDRange{}, syntaxErr("receive ID must be a number")
		}
		id, err := parseNodeID(parts[0])
		return IDRange{Low: id, High: id}, err
	}
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return IDRange{}, syntaxErr("invalid ID range")
	}
	low, err := parseNodeID(parts[0])
	if err != nil {
		return IDRange{}, err
	}
	high, err := parseNodeID(parts[1])
	if err != nil {
		return IDRange{}, err
	}
	return IDRange{Low: low, High: high}, nil
}

func parseNodeID(s string) (NodeID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxNodeID {
		return 0, semanticErr("node ID out of range")
	}
	return NodeID(n), nil
}

// parseMapBound accepts a signed integer that fits the 32-bit OSC argument
// it is sent as.
func parseMapBound(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, semanticErr("mapping bound out of range")
	}
	if err != nil {
		return 0, syntaxErr("mapping bounds must be integers")
	}
	return int(n), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
