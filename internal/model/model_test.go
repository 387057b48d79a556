package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Snapshot", &Snapshot{}, "snapshots"},
		{"SnapshotSection", &SnapshotSection{}, "snapshot_sections"},
		{"RankedObjective", &RankedObjective{}, "ranked_objectives"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
	assert.Len(t, DatabaseModels, len(tests))
}
