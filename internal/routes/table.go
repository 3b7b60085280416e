package routes

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Table is the compiled routing configuration. It is immutable: accessors
// hand out copies.
type Table struct {
	send    map[NodeID][]SendRecord
	receive map[NodeID][]ReceiveRecord
	order   []NodeID
}

// CompileString compiles configuration text.
func CompileString(text string) (*Table, error) {
	return Compile(strings.NewReader(text))
}

// Compile reads the whole configuration and builds a Table. The first
// rejected line aborts the pass with a *LineError; no partial table is
// returned.
func Compile(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	t := &Table{
		send:    map[NodeID][]SendRecord{},
		receive: map[NodeID][]ReceiveRecord{},
	}

	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if err := t.add(line); err != nil {
			return nil, atLine(err, n, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}

	t.order = unionKeys(t.send, t.receive)
	return t, nil
}

func (t *Table) add(line string) error {
	switch Classify(line) {
	case KindRejected:
		return syntaxErr("syntax error")
	case KindComment, KindIgnored:
		return nil
	case KindSend:
		rule, err := ParseSend(line)
		if err != nil {
			return err
		}
		// A line with both arrows must also satisfy the receive grammar,
		// which it never can.
		if strings.Contains(line, receiveArrow) {
			if _, err := ParseReceive(line); err != nil {
				return err
			}
		}
		t.send[rule.Source] = append(t.send[rule.Source], rule.Encode())
	case KindReceive:
		rule, err := ParseReceive(line)
		if err != nil {
			return err
		}
		t.receive[rule.Dest] = append(t.receive[rule.Dest], rule.Encode())
	}
	return nil
}

func unionKeys(send map[NodeID][]SendRecord, receive map[NodeID][]ReceiveRecord) []NodeID {
	seen := make(map[NodeID]struct{}, len(send)+len(receive))
	for id := range send {
		seen[id] = struct{}{}
	}
	for id := range receive {
		seen[id] = struct{}{}
	}
	order := make([]NodeID, 0, len(seen))
	for id := range seen {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}

// Order returns every node that has at least one route, ascending.
func (t *Table) Order() []NodeID {
	return append([]NodeID(nil), t.order...)
}

// SendRoutes returns the send records of a node in compile order.
func (t *Table) SendRoutes(id NodeID) []SendRecord {
	return append([]SendRecord(nil), t.send[id]...)
}

// ReceiveRoutes returns the receive records of a node in compile order.
func (t *Table) ReceiveRoutes(id NodeID) []ReceiveRecord {
	return append([]ReceiveRecord(nil), t.receive[id]...)
}

// Messages is the number of wire messages deploying the node takes:
// start, commit and end plus one per route.
func (t *Table) Messages(id NodeID) int {
	return 3 + len(t.send[id]) + len(t.receive[id])
}

// NodeRoutes is a serialisable view of one node's routes.
type NodeRoutes struct {
	ID      NodeID  `yaml:"id" json:"id"`
	Send    [][]int `yaml:"send,omitempty" json:"send,omitempty"`
	Receive [][]int `yaml:"receive,omitempty" json:"receive,omitempty"`
}

// Nodes returns the table in deployment order.
func (t *Table) Nodes() []NodeRoutes {
	out := make([]NodeRoutes, 0, len(t.order))
	for _, id := range t.order {
		nr := NodeRoutes{ID: id}
		for _, rec := range t.send[id] {
			nr.Send = append(nr.Send, append([]int(nil), rec.Ints()...))
		}
		for _, rec := range t.receive[id] {
			nr.Receive = append(nr.Receive, append([]int(nil), rec.Ints()...))
		}
		out = append(out, nr)
	}
	return out
}
