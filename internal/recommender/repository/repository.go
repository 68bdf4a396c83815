// Package repository 는 과거 평점 행렬의 GORM 기반 저장소다.
// 프로덕션은 PostgreSQL, 테스트는 인메모리 SQLite를 사용한다.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/engine"
)

// Repository: 과거 평점 접근용 GORM 리포지토리.
type Repository struct {
	db *gorm.DB
}

// New: 새로운 Repository 인스턴스를 생성한다.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate: 자동으로 DB 테이블 스키마를 마이그레이션한다.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if err := r.db.WithContext(ctx).AutoMigrate(&HistoricalRating{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// Count 는 저장된 평점 수를 반환한다.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&HistoricalRating{}).Count(&count).Error; err != nil {
		return 0, cerrors.DatabaseError{Operation: "ratings_count", Err: err}
	}
	return count, nil
}

// InsertBatch 는 평점 묶음을 일괄 입력한다. (시드 적재용)
func (r *Repository) InsertBatch(ctx context.Context, rows []HistoricalRating) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return cerrors.DatabaseError{Operation: "ratings_insert_batch", Err: err}
	}
	return nil
}

// LoadMatrix 는 전체 과거 평점을 인메모리 행렬로 적재한다.
// 기본 키 순서로 읽어 사용자 삽입 순서가 실행마다 동일하다.
func (r *Repository) LoadMatrix(ctx context.Context) (*engine.Matrix, error) {
	matrix := engine.NewMatrix()

	rows := make([]HistoricalRating, 0)
	result := r.db.WithContext(ctx).Order("id ASC").FindInBatches(&rows, 1000,
		func(_ *gorm.DB, _ int) error {
			for _, row := range rows {
				matrix.Add(row.UserID, row.GameID, row.Rating)
			}
			return nil
		})
	if result.Error != nil {
		return nil, cerrors.DatabaseError{Operation: "ratings_load_matrix", Err: result.Error}
	}

	return matrix, nil
}
