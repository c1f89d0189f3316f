package core

import (
	"sort"
	"strconv"

	"github.com/spec-kit/support-bot/internal/domain"
)

// Document is the full serialized copy of persisted state. Identity-keyed
// sections use stringified ids so the document stays a plain JSON object.
// The in-flight challenge text is not persisted: a CHALLENGED user simply
// gets a fresh challenge after a restart.
type Document struct {
	Users           map[string]domain.User           `json:"users"`
	History         map[string][]domain.HistoryEntry `json:"history"`
	OperatorStats   map[string]domain.OperatorStat   `json:"operatorStats"`
	AnswerTemplates map[string]domain.AnswerTemplate `json:"answerTemplates"`
	Settings        domain.Settings                  `json:"settings"`
	Roster          Roster                           `json:"roster"`
}

// Roster persists the operator allow-list alongside the rest of the state,
// so there is exactly one durable artifact.
type Roster struct {
	AdminID   int64   `json:"admin_id"`
	Operators []int64 `json:"operators"`
}

// EmptyDocument returns a Document seeded with defaults. Unmarshalling a
// stored document over it merges stored values key-by-key, so settings
// introduced after a snapshot was written keep their defaults.
func EmptyDocument() Document {
	return Document{
		Users:           map[string]domain.User{},
		History:         map[string][]domain.HistoryEntry{},
		OperatorStats:   map[string]domain.OperatorStat{},
		AnswerTemplates: map[string]domain.AnswerTemplate{},
		Settings:        domain.DefaultSettings(),
	}
}

// Snapshot assembles a consistent copy of all persisted stores under the
// lock. The pending ticket queue and active claims are volatile and stay
// out of the document.
func (c *Core) Snapshot() Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := EmptyDocument()
	doc.Settings = c.settings
	doc.Roster = Roster{AdminID: c.adminID, Operators: append([]int64(nil), c.operators...)}

	for id, u := range c.users {
		doc.Users[formatID(id)] = *u
	}
	for id, entries := range c.history {
		doc.History[formatID(id)] = append([]domain.HistoryEntry(nil), entries...)
	}
	for id, stat := range c.stats {
		copied := *stat
		copied.ResponseSeconds = append([]float64(nil), stat.ResponseSeconds...)
		doc.OperatorStats[formatID(id)] = copied
	}
	for key, tpl := range c.templates {
		doc.AnswerTemplates[key] = tpl
	}
	return doc
}

// Restore replaces all persisted stores from the document. Sections the
// document lacks stay empty; JSON objects carry no order, so identity order
// is rebuilt ascending by id.
func (c *Core) Restore(doc Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.users = make(map[int64]*domain.User, len(doc.Users))
	c.userOrder = c.userOrder[:0]
	for _, id := range sortedIDs(doc.Users) {
		u := doc.Users[formatID(id)]
		u.ChallengeQuestion = ""
		u.ChallengeAnswer = 0
		c.users[id] = &u
		c.userOrder = append(c.userOrder, id)
	}

	c.history = make(map[int64][]domain.HistoryEntry, len(doc.History))
	for key, entries := range doc.History {
		id, ok := parseID(key)
		if !ok {
			continue
		}
		c.history[id] = append([]domain.HistoryEntry(nil), entries...)
	}

	c.stats = make(map[int64]*domain.OperatorStat, len(doc.OperatorStats))
	c.statsOrder = c.statsOrder[:0]
	for _, id := range sortedIDs(doc.OperatorStats) {
		stat := doc.OperatorStats[formatID(id)]
		c.stats[id] = &stat
		c.statsOrder = append(c.statsOrder, id)
	}

	c.templates = make(map[string]domain.AnswerTemplate, len(doc.AnswerTemplates))
	for key, tpl := range doc.AnswerTemplates {
		c.templates[key] = tpl
	}

	c.settings = doc.Settings
	c.adminID = doc.Roster.AdminID
	c.operators = append(c.operators[:0], doc.Roster.Operators...)

	c.queue = nil
	c.claims = make(map[int64]domain.Claim)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(key string) (int64, bool) {
	id, err := strconv.ParseInt(key, 10, 64)
	return id, err == nil
}

func sortedIDs[V any](m map[string]V) []int64 {
	ids := make([]int64, 0, len(m))
	for key := range m {
		if id, ok := parseID(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
