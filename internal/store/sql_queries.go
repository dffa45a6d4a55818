// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	saveTask = `
		INSERT INTO tasks (
			id,
			payload,
			done,
			causal_version,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			payload        = excluded.payload,
			done           = excluded.done,
			causal_version = excluded.causal_version,
			updated_at     = excluded.updated_at;`

	getTask = `
		SELECT payload
		FROM tasks
		WHERE id = ?;`

	deleteTask = `DELETE FROM tasks WHERE id = ?;`

	enqueueOperation = `
		INSERT INTO pending_operations (
			type,
			task_id,
			encrypted_blob,
			nonce,
			checksum,
			causal_version,
			parked,
			enqueued_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	setOperationsParked = `
		UPDATE pending_operations
		SET parked = ?
		WHERE task_id = ?;`

	getSession = `
		SELECT
			device_id,
			endpoint,
			token,
			token_expires_at,
			encryption_salt,
			causal_version,
			strategy,
			consecutive_failures,
			last_failure_at,
			next_retry_at,
			last_synced_at
		FROM sync_session
		WHERE id = 1;`

	saveSession = `
		INSERT INTO sync_session (
			id,
			device_id,
			endpoint,
			token,
			token_expires_at,
			encryption_salt,
			causal_version,
			strategy,
			consecutive_failures,
			last_failure_at,
			next_retry_at,
			last_synced_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			device_id            = excluded.device_id,
			endpoint             = excluded.endpoint,
			token                = excluded.token,
			token_expires_at     = excluded.token_expires_at,
			encryption_salt      = excluded.encryption_salt,
			causal_version       = excluded.causal_version,
			strategy             = excluded.strategy,
			consecutive_failures = excluded.consecutive_failures,
			last_failure_at      = excluded.last_failure_at,
			next_retry_at        = excluded.next_retry_at,
			last_synced_at       = excluded.last_synced_at;`

	saveConflict = `
		INSERT INTO conflicts (
			task_id,
			local_task,
			remote_task,
			detected_at
		) VALUES (?, ?, ?, ?)
		ON CONFLICT (task_id) DO UPDATE SET
			local_task  = excluded.local_task,
			remote_task = excluded.remote_task,
			detected_at = excluded.detected_at;`

	getConflict = `
		SELECT task_id, local_task, remote_task, detected_at
		FROM conflicts
		WHERE task_id = ?;`

	listConflicts = `
		SELECT task_id, local_task, remote_task, detected_at
		FROM conflicts
		ORDER BY detected_at;`

	deleteConflict = `DELETE FROM conflicts WHERE task_id = ?;`
)

var operationColumns = []string{
	"seq",
	"type",
	"task_id",
	"encrypted_blob",
	"nonce",
	"checksum",
	"causal_version",
	"parked",
	"enqueued_at",
}

// buildSelectTasksQuery builds the task listing query. A nil done selects
// every task; otherwise the result is filtered by completion state.
func buildSelectTasksQuery(done *bool) (string, []any, error) {
	builder := sq.Select("payload").
		From("tasks").
		OrderBy("updated_at")

	if done != nil {
		builder = builder.Where(sq.Eq{"done": *done})
	}

	return builder.ToSql()
}

// buildListOperationsQuery builds the queue listing query in sequence order.
func buildListOperationsQuery(includeParked bool) (string, []any, error) {
	builder := sq.Select(operationColumns...).
		From("pending_operations").
		OrderBy("seq ASC")

	if !includeParked {
		builder = builder.Where(sq.Eq{"parked": false})
	}

	return builder.ToSql()
}

// buildDeleteOperationsQuery builds a batch delete over sequence numbers.
// squirrel renders the slice as an IN clause.
func buildDeleteOperationsQuery(seqs []int64) (string, []any, error) {
	return sq.Delete("pending_operations").
		Where(sq.Eq{"seq": seqs}).
		ToSql()
}
