package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
)

// RatingsFileName 는 과거 평점 시드 파일 이름이다.
const RatingsFileName = "ratings.csv"

// SeedFromCSV 는 ratings.csv를 테이블에 적재한다. 이미 데이터가 있으면 건너뛴다.
// 파일이 없으면 적재 없이 0을 반환한다. (빈 행렬로 기동 가능)
// 형식 오류는 DataIntegrityError로 기동을 중단시킨다.
func (r *Repository) SeedFromCSV(ctx context.Context, path string) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: fmt.Sprintf("open failed: %v", err)}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: fmt.Sprintf("csv parse failed: %v", err)}
	}
	if len(records) == 0 {
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: "empty file"}
	}

	header := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	userCol, ok := header["userid"]
	if !ok {
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: `missing required column "userId"`}
	}
	gameCol, ok := header["gameid"]
	if !ok {
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: `missing required column "gameId"`}
	}
	ratingCol, ok := header["rating"]
	if !ok {
		return 0, cerrors.DataIntegrityError{Source: RatingsFileName, Reason: `missing required column "rating"`}
	}

	rows := make([]HistoricalRating, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) <= userCol || len(record) <= gameCol || len(record) <= ratingCol {
			return 0, cerrors.DataIntegrityError{
				Source: RatingsFileName,
				Reason: fmt.Sprintf("row %d: too few columns", i+2),
			}
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(record[ratingCol]), 64)
		if err != nil {
			return 0, cerrors.DataIntegrityError{
				Source: RatingsFileName,
				Reason: fmt.Sprintf("row %d: malformed rating %q", i+2, record[ratingCol]),
			}
		}

		rows = append(rows, HistoricalRating{
			UserID: strings.TrimSpace(record[userCol]),
			GameID: strings.TrimSpace(record[gameCol]),
			Rating: rating,
		})
	}

	if err := r.InsertBatch(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
