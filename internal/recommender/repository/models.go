package repository

import "time"

// HistoricalRating: 커뮤니티 과거 평점 한 건.
// 유사도 계산의 학습 신호이며 적재 이후 읽기 전용으로 취급된다.
type HistoricalRating struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_historical_ratings_user_game,priority:1;index"`
	GameID    string    `gorm:"column:game_id;not null;uniqueIndex:idx_historical_ratings_user_game,priority:2;index"`
	Rating    float64   `gorm:"column:rating;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (HistoricalRating) TableName() string { return "historical_ratings" }
