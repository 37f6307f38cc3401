package history

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Entity struct {
	ID uint `gorm:"primaryKey" json:"id"`
}

// MatchRecord is one finished match.
type MatchRecord struct {
	Entity

	Code string `gorm:"size:6;index" json:"roomCode"`
	Mode string `gorm:"size:8" json:"gameMode"`

	// empty in solo
	TeamID      string    `gorm:"size:16" json:"teamId,omitempty"`
	WinnerID    string    `gorm:"size:36" json:"winnerId"`
	WinnerName  string    `gorm:"size:64" json:"winnerName"`
	PlayerCount int       `json:"playerCount"`
	StartedAt   time.Time `json:"startedAt"`
	EndedAt     time.Time `json:"endedAt"`

	Players []*PlayerRecord `gorm:"foreignKey:MatchID" json:"players"`
}

type PlayerRecord struct {
	Entity

	MatchID  uint   `gorm:"not null;index" json:"-"`
	PlayerID string `gorm:"size:36" json:"playerId"`
	Name     string `gorm:"size:64" json:"playerName"`
	Kills    int    `json:"kills"`
	Winner   bool   `json:"winner"`
}

func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// an in-memory database lives only as long as its connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&MatchRecord{}, &PlayerRecord{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
