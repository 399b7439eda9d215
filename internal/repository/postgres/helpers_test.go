package postgres

import (
	"testing"

	"crm-service/internal/domain/client"
	"crm-service/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSetBuilder_Build(t *testing.T) {
	b := newSetBuilder()
	b.add("name", "Acme")
	b.addExpr("completed_at", "CASE WHEN %s = 'x' THEN NOW() ELSE %s END", "x")

	query, args := b.build("things", "id-1", "id, name")

	assert.Equal(t,
		"UPDATE things SET name = $1, completed_at = CASE WHEN $2 = 'x' THEN NOW() ELSE $2 END, updated_at = NOW() WHERE id = $3 RETURNING id, name",
		query)
	assert.Equal(t, []interface{}{"Acme", "x", "id-1"}, args)
}

func TestClientUpdate_OnlyNotes(t *testing.T) {
	query, args := clientUpdate(&client.UpdateClientRequest{Notes: strPtr("call after 5")}).
		build("clients", "c1", clientColumns)

	assert.Contains(t, query, "SET notes = $1, updated_at = NOW() WHERE id = $2")
	assert.NotContains(t, query, "name =")
	assert.NotContains(t, query, "status =")
	assert.Equal(t, []interface{}{"call after 5", "c1"}, args)
}

func TestClientUpdate_EmptyTouchesOnlyTimestamp(t *testing.T) {
	query, args := clientUpdate(&client.UpdateClientRequest{}).build("clients", "c1", clientColumns)

	assert.Contains(t, query, "SET updated_at = NOW() WHERE id = $1")
	assert.Equal(t, []interface{}{"c1"}, args)
}

func TestClientUpdate_EmptyTagsStoredAsEmptyArray(t *testing.T) {
	var tags []string
	_, args := clientUpdate(&client.UpdateClientRequest{Tags: &tags}).build("clients", "c1", clientColumns)

	assert.Equal(t, []string{}, args[0])
}

func TestJobUpdate_StatusDrivesCompletedAt(t *testing.T) {
	query, args := jobUpdate(&job.UpdateJobRequest{Status: strPtr(job.StatusCompleted)}).
		build("jobs", "j1", jobColumns)

	assert.Contains(t, query,
		"status = $1, completed_at = CASE WHEN $2::text = 'completed' THEN COALESCE(completed_at, NOW()) ELSE NULL END")
	assert.Equal(t, []interface{}{job.StatusCompleted, job.StatusCompleted, "j1"}, args)
}

func TestJobUpdate_WithoutStatusLeavesCompletedAt(t *testing.T) {
	query, _ := jobUpdate(&job.UpdateJobRequest{Notes: strPtr("bring ladder")}).
		build("jobs", "j1", jobColumns)

	assert.NotContains(t, query, "completed_at =")
}

func TestWhereClause(t *testing.T) {
	assert.Equal(t, "", whereClause(nil))
	assert.Equal(t, " WHERE a = $1", whereClause([]string{"a = $1"}))
	assert.Equal(t, " WHERE a = $1 AND b = $2", whereClause([]string{"a = $1", "b = $2"}))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "m.id, m.client_id, m.sent_at", prefixed("m", "id, client_id,\n\t\tsent_at"))
}
