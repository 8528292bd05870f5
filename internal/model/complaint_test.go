package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComplaintStatusAcceptsLegacyLabels(t *testing.T) {
	cases := map[string]ComplaintStatus{
		"PendingVerification":  ComplaintStatusPendingVerification,
		"Pending Verification": ComplaintStatusPendingVerification,
		"pending":              ComplaintStatusPendingVerification,
		"In Progress":          ComplaintStatusInProgress,
		"appeal raised":        ComplaintStatusAppealRaised,
		" Rejected ":           ComplaintStatusRejected,
	}
	for raw, want := range cases {
		got, ok := ParseComplaintStatus(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseComplaintStatus("Closed")
	assert.False(t, ok)
	_, ok = ParseComplaintStatus("")
	assert.False(t, ok)
}

func TestSeverityRankDefaultsToMedium(t *testing.T) {
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 2, Severity("").Rank())
	assert.Equal(t, SeverityHigh, ParseSeverity("HIGH"))
	assert.Equal(t, SeverityMedium, ParseSeverity("urgent"))
}

func TestNormalizeFillsDefaults(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := Complaint{ID: " CMP-000001 ", CreatedAt: created}

	c.Normalize()

	assert.Equal(t, "CMP-000001", c.ID)
	assert.Equal(t, ComplaintStatusPendingVerification, c.Status)
	assert.Equal(t, SeverityMedium, c.Severity)
	assert.NotNil(t, c.Timeline)
	assert.Empty(t, c.Timeline)
	assert.NotNil(t, c.AuditLog)
	assert.Empty(t, c.AuditLog)
	assert.Nil(t, c.AppealRaisedAt)
	assert.Equal(t, created, c.UpdatedAt)
	assert.False(t, c.HasAppealed())
}

func TestUnmarshalLegacyBrowserRecord(t *testing.T) {
	raw := `{
		"id": 1714557600000,
		"category": "Garbage",
		"ward": null,
		"status": "In Progress",
		"citizen": {"name": "Asha", "phone": "98450"},
		"createdAt": 1714557600000,
		"timeline": null,
		"auditLog": null,
		"appealRaisedAt": "",
		"escalated": true
	}`

	var c Complaint
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	c.Normalize()

	assert.Equal(t, "1714557600000", c.ID)
	assert.Equal(t, "Garbage", c.Category)
	assert.Equal(t, "", c.Ward)
	assert.Equal(t, ComplaintStatusInProgress, c.Status)
	assert.Equal(t, "Asha", c.Citizen.Name)
	assert.Equal(t, time.UnixMilli(1714557600000).UTC(), c.CreatedAt)
	assert.True(t, c.Escalated)
	assert.Empty(t, c.Timeline)
	assert.Empty(t, c.AuditLog)
	assert.Nil(t, c.AppealRaisedAt)
}

func TestComplaintJSONUsesEmptyStringsForUnsetText(t *testing.T) {
	c := Complaint{ID: "CMP-000001"}
	c.Normalize()

	payload, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &fields))
	assert.Equal(t, "", fields["officerComment"])
	assert.Equal(t, "", fields["eta"])
	assert.Equal(t, "", fields["department"])
	assert.Equal(t, false, fields["escalated"])
	assert.Equal(t, []interface{}{}, fields["timeline"])
	assert.Nil(t, fields["appealRaisedAt"])
}

func TestAppealRaisedAtRoundTrips(t *testing.T) {
	at := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	c := Complaint{ID: "CMP-000002", AppealRaisedAt: &at}
	c.Normalize()

	payload, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Complaint
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.NotNil(t, decoded.AppealRaisedAt)
	assert.True(t, at.Equal(*decoded.AppealRaisedAt))
	assert.True(t, decoded.HasAppealed())
}

func TestPrincipalAuditName(t *testing.T) {
	assert.Equal(t, "Officer Rao", Principal{UserID: "u-1", Name: "Officer Rao"}.AuditName())
	assert.Equal(t, "u-1", Principal{UserID: "u-1"}.AuditName())
	assert.True(t, Principal{Role: UserRoleOfficer}.CanManage())
	assert.False(t, Principal{Role: UserRoleViewer}.CanManage())
}

func TestParseRejectionReason(t *testing.T) {
	reason, ok := ParseRejectionReason("insufficientevidence")
	require.True(t, ok)
	assert.Equal(t, RejectionReasonInsufficientEvidence, reason)

	_, ok = ParseRejectionReason("Spam")
	assert.False(t, ok)
}

func TestUnmarshalLegacyNestedFields(t *testing.T) {
	raw := `{
		"id": 1714557600000,
		"status": "Resolved",
		"escalated": "true",
		"citizen": {"name": "Asha", "phone": 9845012345},
		"timeline": [
			{"step": "Resolved", "status": "completed", "date": "5/1/2024, 10:00:00 AM"},
			{"step": "Verified", "status": "completed", "date": 1714557600000}
		],
		"auditLog": [
			{"id": "", "action": "STATUS_UPDATE", "byAdmin": "admin", "timestamp": "5/1/2024, 10:00:00 AM",
			 "previousStatus": "In Progress", "newStatus": "Resolved", "reason": null, "comment": null}
		]
	}`

	var c Complaint
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	c.Normalize()

	assert.Equal(t, "1714557600000", c.ID)
	assert.Equal(t, ComplaintStatusResolved, c.Status)
	assert.True(t, c.Escalated)
	assert.Equal(t, "9845012345", c.Citizen.Phone)
	require.Len(t, c.Timeline, 2)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), c.Timeline[0].Date)
	assert.Equal(t, time.UnixMilli(1714557600000).UTC(), c.Timeline[1].Date)
	require.Len(t, c.AuditLog, 1)
	assert.Equal(t, "", c.AuditLog[0].ID)
	assert.Equal(t, ComplaintStatusInProgress, c.AuditLog[0].PreviousStatus)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), c.AuditLog[0].Timestamp)
}

func TestLooseBool(t *testing.T) {
	cases := map[string]bool{
		`true`: true, `"true"`: true, `"Yes"`: true, `1`: true,
		`false`: false, `"false"`: false, `0`: false, `null`: false, `"maybe"`: false,
	}
	for raw, want := range cases {
		var b looseBool
		require.NoError(t, json.Unmarshal([]byte(raw), &b), raw)
		assert.Equal(t, want, bool(b), raw)
	}
}

func TestParseLooseTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 22, 15, 30, 0, time.UTC)
	assert.Equal(t, want, parseLooseTime("5/1/2024, 10:15:30 PM"))
	assert.Equal(t, want, parseLooseTime("2024-05-01 22:15:30"))
	assert.True(t, want.Equal(parseLooseTime("Wed May 01 2024 22:15:30 GMT+0000 (Coordinated Universal Time)")))
	assert.True(t, parseLooseTime("yesterday").IsZero())
}
