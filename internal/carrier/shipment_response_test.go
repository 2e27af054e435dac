package carrier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeShipment(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate func(*testing.T, ShipmentSummary)
	}{
		{
			name: "full response",
			body: `{
				"shipmentTrackingNumber":"1234567890",
				"dispatchConfirmationNumber":"PRG200227000256",
				"packages":[{"trackingNumber":"JD0001"},{"trackingNumber":"JD0002"}],
				"documents":[
					{"typeCode":"label","imageFormat":"PDF","content":"TEFCRUw="},
					{"typeCode":"invoice","imageFormat":"PDF","content":"SU5W"}
				],
				"warnings":["Pickup was not booked"]
			}`,
			validate: func(t *testing.T, s ShipmentSummary) {
				assert.Equal(t, "1234567890", s.TrackingNumber)
				assert.Equal(t, "PRG200227000256", s.DispatchConfirmationNumber)
				assert.Equal(t, []string{"JD0001", "JD0002"}, s.PackageTrackingNumbers)
				assert.Equal(t, []string{"Pickup was not booked"}, s.Warnings)

				label, ok := s.Document("label")
				assert.True(t, ok)
				assert.Equal(t, "TEFCRUw=", label.Content)
				_, ok = s.Document("receipt")
				assert.False(t, ok)
			},
		},
		{
			name: "dispatch numbers list and object warnings",
			body: `{"shipmentTrackingNumber":"123","dispatchConfirmationNumbers":["CBJ1"],"warnings":[{"message":"w1"}]}`,
			validate: func(t *testing.T, s ShipmentSummary) {
				assert.Equal(t, "CBJ1", s.DispatchConfirmationNumber)
				assert.Equal(t, []string{"w1"}, s.Warnings)
			},
		},
		{
			name: "unexpected shape",
			body: `["not","an","object"]`,
			validate: func(t *testing.T, s ShipmentSummary) {
				assert.Equal(t, ShipmentSummary{}, s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, SummarizeShipment([]byte(tt.body)))
		})
	}
}
