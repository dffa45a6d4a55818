// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

// Package queue folds redundant pending operations before push: the server
// only ever needs the net effect of a task's queued history, not every
// intermediate mutation.
package queue

import (
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

// Plan is the queue rewrite produced by consolidation. RemoveSeqs lists the
// raw operations to drop; Upserts are their folded replacements. An empty
// plan means the queue is already minimal.
type Plan struct {
	RemoveSeqs []int64
	Upserts    []models.PendingOperation
}

// Empty reports whether consolidation found nothing to fold.
func (p Plan) Empty() bool {
	return len(p.RemoveSeqs) == 0 && len(p.Upserts) == 0
}

// Optimizer folds each task's queued mutation history into at most one
// operation. Consolidation is idempotent: running it on an already folded
// queue yields an empty plan.
type Optimizer struct {
	logger *logger.Logger
}

func NewOptimizer(log *logger.Logger) *Optimizer {
	return &Optimizer{logger: log}
}

// Consolidate inspects ops (in sequence order) and returns the rewrite plan.
//
// Fold rules per task, applied pairwise in order:
//
//	create + update -> create carrying the final state
//	update + update -> update carrying the final state
//	create + delete -> nothing (the server never saw the task)
//	update + delete -> delete
//	delete + create -> update (the server still holds the old record)
//
// Parked operations fold like any other; the folded operation inherits the
// parked flag of the last raw operation so a parked task stays parked.
func (o *Optimizer) Consolidate(ops []models.PendingOperation) Plan {
	groups := map[string][]models.PendingOperation{}
	order := make([]string, 0, len(ops))

	for _, op := range ops {
		if _, seen := groups[op.TaskID]; !seen {
			order = append(order, op.TaskID)
		}
		groups[op.TaskID] = append(groups[op.TaskID], op)
	}

	var plan Plan
	for _, taskID := range order {
		group := groups[taskID]
		if len(group) < 2 {
			continue
		}

		for _, op := range group {
			plan.RemoveSeqs = append(plan.RemoveSeqs, op.Seq)
		}

		if folded, keep := foldGroup(group); keep {
			plan.Upserts = append(plan.Upserts, folded)
		}
	}

	if !plan.Empty() {
		o.logger.Debug().
			Int("removed", len(plan.RemoveSeqs)).
			Int("folded", len(plan.Upserts)).
			Msg("queue consolidation planned")
	}

	return plan
}

// netNone marks a history whose effects cancel out entirely.
const netNone = models.OperationType("")

// foldGroup reduces one task's ordered history to its net effect. The second
// return value is false when the history cancels out entirely.
//
// Whether the server already knows the task is inferred from the first
// queued operation: a leading create means it does not.
func foldGroup(group []models.PendingOperation) (models.PendingOperation, bool) {
	serverAware := group[0].Type != models.OpCreate

	net := netNone
	for _, op := range group {
		switch op.Type {
		case models.OpCreate, models.OpUpdate:
			switch net {
			case models.OpCreate:
				// still a create from the server's point of view
			case netNone, models.OpDelete, models.OpUpdate:
				if serverAware {
					net = models.OpUpdate
				} else {
					net = models.OpCreate
				}
			}
		case models.OpDelete:
			switch net {
			case models.OpCreate:
				// the server never saw the task, nothing to tell it
				net = netNone
			default:
				if serverAware {
					net = models.OpDelete
				} else {
					net = netNone
				}
			}
		}
	}

	if net == netNone {
		return models.PendingOperation{}, false
	}

	last := group[len(group)-1]
	return models.PendingOperation{
		Type:          net,
		TaskID:        last.TaskID,
		CausalVersion: last.CausalVersion.Clone(),
		Parked:        last.Parked,
		EnqueuedAt:    last.EnqueuedAt,
	}, true
}
