package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Compiled(nil)
	m.Compiled(errors.New("bad line"))
	m.Compiled(nil)
	m.MessageSent("/startprog")
	m.MessageSent("/send")
	m.MessageSent("/send")
	m.SendFailed()
	m.NodeProvisioned()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.compileTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.compileTotal.WithLabelValues(ResultError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.messagesSent.WithLabelValues("/send")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sendErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodesProvisioned))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Compiled(nil)
	m.MessageSent("/commit")
	m.SendFailed()
	m.NodeProvisioned()
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.NodeProvisioned()

	path := filepath.Join(t.TempDir(), "sbconf.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sbconf_nodes_provisioned_total 1")
}
