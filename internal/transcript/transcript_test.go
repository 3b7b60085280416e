package transcript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recorder{}
	m := Multi{NewWriter(&buf), rec, Discard}

	m.Println("Parsing...")
	m.Println("Verified... OK.")

	assert.Equal(t, "Parsing...\nVerified... OK.\n", buf.String())
	assert.Equal(t, []string{"Parsing...", "Verified... OK."}, rec.Lines)
}
