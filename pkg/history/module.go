package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/saboracaiteria/br.canaa/pkg/ids"
	"github.com/saboracaiteria/br.canaa/pkg/match"
	"github.com/saboracaiteria/br.canaa/pkg/registry"
	"github.com/saboracaiteria/br.canaa/pkg/utils"
)

const DefaultLimit = 100

// Store keeps the most recent finished matches in memory. Nothing in it
// survives a restart.
type Store struct {
	db    *gorm.DB
	limit int
}

func New(limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	dsn := fmt.Sprintf("file:canaa-%s?mode=memory&cache=shared", ids.NewSessionID())
	db, err := InitDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open match history: %w", err)
	}

	return &Store{db: db, limit: limit}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func recordOf(summary match.Summary) *MatchRecord {
	winners := map[string]struct{}{}
	for _, w := range summary.Result.Winners {
		winners[w.PlayerID] = struct{}{}
	}

	record := &MatchRecord{
		Code:        summary.Code,
		Mode:        summary.Mode.String(),
		TeamID:      summary.Result.TeamID,
		WinnerID:    summary.Result.WinnerID,
		WinnerName:  summary.Result.WinnerName,
		PlayerCount: len(summary.Players),
		StartedAt:   summary.StartedAt,
		EndedAt:     summary.EndedAt,
	}
	for _, p := range summary.Players {
		_, won := winners[p.PlayerID]
		record.Players = append(record.Players, &PlayerRecord{
			PlayerID: p.PlayerID,
			Name:     p.PlayerName,
			Kills:    p.Kills,
			Winner:   won,
		})
	}
	return record
}

// Record stores a finished match and forgets the oldest beyond the limit.
func (s *Store) Record(ctx context.Context, summary match.Summary) error {
	db := s.db.WithContext(ctx)

	err := db.Create(recordOf(summary)).Error
	if err != nil {
		return fmt.Errorf("failed to record match %s: %w", summary.Code, err)
	}

	var matchIDs []uint
	err = db.Model(&MatchRecord{}).Order("id desc").Pluck("id", &matchIDs).Error
	if err != nil {
		return err
	}
	if len(matchIDs) <= s.limit {
		return nil
	}

	stale := matchIDs[s.limit:]
	err = db.Where("match_id IN ?", stale).Delete(&PlayerRecord{}).Error
	if err != nil {
		return err
	}
	return db.Delete(&MatchRecord{}, stale).Error
}

// Recent returns up to n matches, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]MatchRecord, error) {
	if n <= 0 || n > s.limit {
		n = s.limit
	}

	var records []MatchRecord
	err := s.db.WithContext(ctx).
		Preload("Players").
		Order("id desc").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Watch records every game-over notice until ctx is done.
func (s *Store) Watch(ctx context.Context, notices *utils.Subscriber[registry.Notice]) {
	defer notices.Done()

	for {
		select {
		case notice := <-notices.Recv():
			if notice.Kind != registry.NoticeGameOver || notice.Summary == nil {
				continue
			}
			err := s.Record(ctx, *notice.Summary)
			if err != nil {
				log.Error().Err(err).Msg("could not record match")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := s.Recent(r.Context(), n)
	if err != nil {
		log.Error().Err(err).Msg("could not load match history")
		http.Error(w, "could not load match history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []MatchRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
