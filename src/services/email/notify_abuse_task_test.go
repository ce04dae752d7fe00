package email

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendAbuseTask(t *testing.T) {
	task, err := NewSendAbuseTask("  Ops@X.COM ", " 507f1f77bcf86cd799439011 ")
	require.NoError(t, err)
	assert.Equal(t, TypeSendAbuse, task.Type())

	var p SendAbusePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "ops@x.com", p.Email)
	assert.Equal(t, "507f1f77bcf86cd799439011", p.SubmissionID)
}
