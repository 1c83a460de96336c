package game

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName            = "pacman_fsm"
	leaderboardObject  = "scores"
	leaderboardProp    = "leaderboard"
	maxLeaderboardRows = 10
)

var ErrNegativeScore = errors.New("score must be non-negative")

// HighScoreRecord stores a score and the name of the player who achieved it.
type HighScoreRecord struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// HighScoreStore keeps the leaderboard in memory and mirrors it to gdata.
// A nil manager gives a memory-only store.
type HighScoreStore struct {
	data    *gdata.Manager
	records []HighScoreRecord
}

// OpenHighScoreStore opens the per-user data directory. Failure is logged and
// leaves the store memory-only.
func OpenHighScoreStore() *HighScoreStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[HighScore] Warning: persistent storage unavailable: %v", err)
		m = nil
	}
	return NewHighScoreStore(m)
}

func NewHighScoreStore(m *gdata.Manager) *HighScoreStore {
	s := &HighScoreStore{data: m}
	if err := s.Load(); err != nil {
		log.Printf("[HighScore] Warning: %v (starting empty)", err)
	}
	return s
}

func (s *HighScoreStore) Load() error {
	s.records = nil
	if s.data == nil || !s.data.ObjectPropExists(leaderboardObject, leaderboardProp) {
		return nil
	}
	raw, err := s.data.LoadObjectProp(leaderboardObject, leaderboardProp)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	var list []HighScoreRecord
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	s.records = list
	return nil
}

func (s *HighScoreStore) save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := s.data.SaveObjectProp(leaderboardObject, leaderboardProp, raw); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// Submit records a finished game. A name already on the board keeps its best
// score; names compare case-insensitively.
func (s *HighScoreStore) Submit(rec HighScoreRecord) error {
	if rec.Score < 0 {
		return ErrNegativeScore
	}
	rec.Name = strings.TrimSpace(rec.Name)
	updated := false
	for i := range s.records {
		if strings.EqualFold(strings.TrimSpace(s.records[i].Name), rec.Name) {
			if rec.Score > s.records[i].Score {
				s.records[i].Score = rec.Score
			}
			updated = true
			break
		}
	}
	if !updated {
		s.records = append(s.records, rec)
	}
	return s.save()
}

// Leaderboard returns the top records, best first.
func (s *HighScoreStore) Leaderboard() []HighScoreRecord {
	list := make([]HighScoreRecord, len(s.records))
	copy(list, s.records)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	if len(list) > maxLeaderboardRows {
		list = list[:maxLeaderboardRows]
	}
	return list
}

// Best returns the top record, or nil when nothing has been recorded.
func (s *HighScoreStore) Best() *HighScoreRecord {
	list := s.Leaderboard()
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}
