package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuditLogEntry(t *testing.T) {
	entry := NewAuditLogEntry(ActionShipment, OutcomeSuccess)

	assert.Equal(t, "shipment_success", entry.LogType)
	assert.Equal(t, ActionShipment, entry.Action)
	assert.Equal(t, OutcomeSuccess, entry.Outcome)
}

func TestAuditQuery_Normalize(t *testing.T) {
	tests := []struct {
		name           string
		query          AuditQuery
		expectedLimit  int
		expectedOffset int
	}{
		{name: "defaults", query: AuditQuery{}, expectedLimit: DefaultAuditLimit},
		{name: "keeps valid values", query: AuditQuery{Limit: 20, Offset: 40}, expectedLimit: 20, expectedOffset: 40},
		{name: "caps limit", query: AuditQuery{Limit: 5000}, expectedLimit: MaxAuditLimit},
		{name: "negative offset", query: AuditQuery{Limit: 10, Offset: -1}, expectedLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.query
			q.Normalize()
			assert.Equal(t, tt.expectedLimit, q.Limit)
			assert.Equal(t, tt.expectedOffset, q.Offset)
		})
	}
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, "%123%", ContainsPattern("123"))
	assert.Equal(t, "%JD%01%", ContainsPattern(" JD*01 "))
	assert.Equal(t, "TH%", PrefixPattern("TH"))
}
