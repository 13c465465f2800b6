package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushDataCopiesCallerMap(t *testing.T) {
	data := map[string]string{"relationship_id": "rel-1"}

	push := pushData(data, "rent_paid")
	assert.Equal(t, "rent_paid", push["type"])
	assert.Equal(t, "rel-1", push["relationship_id"])

	// The caller's map stays untouched.
	assert.NotContains(t, data, "type")
	assert.Len(t, data, 1)
}

func TestPushDataNilMap(t *testing.T) {
	push := pushData(nil, "rent_reminder")
	assert.Equal(t, map[string]string{"type": "rent_reminder"}, push)
}
