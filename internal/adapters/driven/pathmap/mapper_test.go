package pathmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapper(t *testing.T) {
	tests := []struct {
		name   string
		root   string
		pid    string
		object string
	}{
		{"with root", "/migrated", "demo:1", "/migrated/demo/1"},
		{"root without slash", "migrated/", "demo:1", "/migrated/demo/1"},
		{"empty root", "", "demo:1", "/demo/1"},
		{"no namespace", "/migrated", "orphan", "/migrated/orphan"},
		{"escaped", "", "demo:a b", "/demo/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.root)
			assert.Equal(t, tt.object, m.MapObjectPath(tt.pid))
			assert.Equal(t, tt.object+"/DS1", m.MapDatastreamPath(tt.pid, "DS1"))
		})
	}
}
