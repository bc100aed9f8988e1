package vectorindex

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type record struct {
	id       string
	ownerID  string
	vector   []float32
	metadata map[string]any
}

// MemoryIndex is an exact-scan cosine index held in process memory. It backs
// tests and single-process deployments; PostgresIndex is the durable path.
// Both implementations share filter and skill-row-exclusion semantics.
type MemoryIndex struct {
	mu sync.RWMutex
	// namespace -> records
	records map[string][]record
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{records: make(map[string][]record)}
}

// UpsertJob replaces all vectors owned by job.JobID in the jobs namespace.
func (m *MemoryIndex) UpsertJob(_ context.Context, job JobUpsert) error {
	rows := make([]record, 0, 1+len(job.Skills))

	meta := map[string]any{MetaJobID: job.JobID, MetaTitle: job.Title, MetaIsSkillVector: false}
	for k, v := range job.Metadata {
		meta[k] = v
	}
	rows = append(rows, record{
		id:       job.JobID,
		ownerID:  job.JobID,
		vector:   job.Vector,
		metadata: meta,
	})

	for _, skill := range job.Skills {
		rows = append(rows, record{
			id:      uuid.NewString(),
			ownerID: job.JobID,
			vector:  skill.Vector,
			metadata: map[string]any{
				MetaTitle:         job.Title,
				MetaSkill:         skill.Skill,
				MetaIsSkillVector: true,
			},
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceOwner(NamespaceJobs, job.JobID, rows)
	return nil
}

// UpsertUserSkills replaces all vectors owned by (userID, resumeID) in the
// users namespace.
func (m *MemoryIndex) UpsertUserSkills(_ context.Context, userID, resumeID string, skills []SkillUpsert) error {
	owner := userOwner(userID, resumeID)
	rows := make([]record, 0, len(skills))
	for _, skill := range skills {
		rows = append(rows, record{
			id:      uuid.NewString(),
			ownerID: owner,
			vector:  skill.Vector,
			metadata: map[string]any{
				MetaSkill:    skill.Skill,
				MetaUserID:   userID,
				MetaResumeID: resumeID,
			},
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceOwner(NamespaceUsers, owner, rows)
	return nil
}

// Search scans namespace, scoring every row that satisfies the filters.
func (m *MemoryIndex) Search(_ context.Context, namespace string, queryVector []float32, topK int, filters []Filter) ([]Match, error) {
	if topK <= 0 {
		return nil, nil
	}

	excludeSkillRows := namespace == NamespaceJobs && !referencesSkillFlag(filters)

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, topK)
scan:
	for _, rec := range m.records[namespace] {
		if excludeSkillRows {
			if flagged, _ := rec.metadata[MetaIsSkillVector].(bool); flagged {
				continue
			}
		}
		for _, f := range filters {
			if !f.Matches(rec.metadata) {
				continue scan
			}
		}
		matches = append(matches, Match{
			ID:       rec.id,
			Score:    CosineSimilarity(queryVector, rec.vector),
			Metadata: rec.metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteJob removes all vectors for a job.
func (m *MemoryIndex) DeleteJob(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceOwner(NamespaceJobs, jobID, nil)
	return nil
}

// DeleteUserSkills removes all vectors for (userID, resumeID).
func (m *MemoryIndex) DeleteUserSkills(_ context.Context, userID, resumeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceOwner(NamespaceUsers, userOwner(userID, resumeID), nil)
	return nil
}

// Close is a no-op for the in-memory index.
func (m *MemoryIndex) Close() error {
	return nil
}

// replaceOwner drops every record with the given owner and appends rows.
// Callers hold the write lock.
func (m *MemoryIndex) replaceOwner(namespace, ownerID string, rows []record) {
	kept := m.records[namespace][:0]
	for _, rec := range m.records[namespace] {
		if rec.ownerID != ownerID {
			kept = append(kept, rec)
		}
	}
	m.records[namespace] = append(kept, rows...)
}
